package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookshelf/internal/auth"
)

// HashTokenCommand prints the bcrypt hash to use as AUTH_TOKEN_HASH.
// Without -token a random token is generated and printed once.
type HashTokenCommand struct {
	Token string
	Cost  int

	Out io.Writer
}

// NewHashTokenCommand creates a new HashTokenCommand
func NewHashTokenCommand() *HashTokenCommand {
	return &HashTokenCommand{Out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *HashTokenCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("hash-token", flag.ContinueOnError)

	fs.StringVar(&cmd.Token, "token", "", "API token to hash (a random one is generated if empty)")
	fs.IntVar(&cmd.Cost, "cost", auth.DefaultBcryptCost, "bcrypt cost factor")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s hash-token [-token <token>] [-cost 12]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print a bcrypt hash for AUTH_TOKEN_HASH (used with AUTH_MODE=token).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *HashTokenCommand) Run() error {
	if cmd.Out == nil {
		cmd.Out = os.Stdout
	}

	token := cmd.Token
	generated := token == ""
	if generated {
		var err error
		token, err = auth.GenerateToken()
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}
	}

	hash, err := auth.HashToken(token, cmd.Cost)
	if err != nil {
		return fmt.Errorf("failed to hash token: %w", err)
	}

	if generated {
		fmt.Fprintf(cmd.Out, "AUTH_TOKEN=%s\n", token)
	}
	fmt.Fprintf(cmd.Out, "AUTH_TOKEN_HASH=%s\n", hash)
	return nil
}
