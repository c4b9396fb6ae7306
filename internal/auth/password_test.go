package auth

import (
	"strings"
	"testing"
)

func TestHashToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "valid token",
			token:   "validtoken123456789",
			wantErr: nil,
		},
		{
			name:    "token too short",
			token:   "short",
			wantErr: ErrTokenTooShort,
		},
		{
			name:    "token at minimum length",
			token:   "1234567890123456",
			wantErr: nil,
		},
		{
			name:    "token too long",
			token:   strings.Repeat("a", 73),
			wantErr: ErrTokenTooLong,
		},
		{
			name:    "token at maximum length",
			token:   strings.Repeat("a", 72),
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashToken(tt.token, 4)
			if err != tt.wantErr {
				t.Errorf("HashToken() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr == nil && hash == "" {
				t.Error("HashToken() returned empty hash for valid token")
			}
		})
	}
}

func TestCheckToken(t *testing.T) {
	token := "correcttoken12345"
	hash, err := HashToken(token, 4)
	if err != nil {
		t.Fatalf("HashToken() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"correct token", token, nil},
		{"wrong token", "wrongtoken123456", ErrInvalidToken},
		{"empty token", "", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckToken(tt.token, hash); err != tt.wantErr {
				t.Errorf("CheckToken() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckToken_MalformedHash(t *testing.T) {
	err := CheckToken("sometoken1234567", "not-a-hash")
	if err == nil {
		t.Fatal("CheckToken() should fail for a malformed hash")
	}
	if err == ErrInvalidToken {
		t.Error("malformed hash should not be reported as a token mismatch")
	}
}

func TestValidateHash(t *testing.T) {
	hash, err := HashToken("validtoken123456789", 4)
	if err != nil {
		t.Fatalf("HashToken() error = %v", err)
	}
	if err := ValidateHash(hash); err != nil {
		t.Errorf("ValidateHash() error = %v for valid hash", err)
	}
	if err := ValidateHash("plaintext"); err == nil {
		t.Error("ValidateHash() should reject non-bcrypt input")
	}
}

func TestGenerateToken(t *testing.T) {
	first, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	second, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if len(first) != 64 {
		t.Errorf("token length = %d, want 64", len(first))
	}
	if first == second {
		t.Error("GenerateToken() returned the same token twice")
	}
}
