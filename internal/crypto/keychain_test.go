package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	svc := NewKeyChainService()

	s1, err := svc.GenerateEncryptionSalt()
	if err != nil {
		t.Fatalf("GenerateEncryptionSalt error: %v", err)
	}
	s2, err := svc.GenerateEncryptionSalt()
	if err != nil {
		t.Fatalf("GenerateEncryptionSalt error: %v", err)
	}

	if len(s1) != 16 || len(s2) != 16 {
		t.Fatalf("salt lengths = %d, %d, want 16", len(s1), len(s2))
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected salts to differ, but they are equal")
	}
}

func TestGenerateDEK_LengthAndRandomness(t *testing.T) {
	svc := NewKeyChainService()

	d1, err := svc.GenerateDEK()
	if err != nil {
		t.Fatalf("GenerateDEK error: %v", err)
	}
	d2, err := svc.GenerateDEK()
	if err != nil {
		t.Fatalf("GenerateDEK error: %v", err)
	}

	if len(d1) != 32 || len(d2) != 32 {
		t.Fatalf("DEK lengths = %d, %d, want 32", len(d1), len(d2))
	}
	if bytes.Equal(d1, d2) {
		t.Fatalf("expected DEKs to differ, but they are equal")
	}
}

func TestGenerateKEK_DeterministicForSameInputs(t *testing.T) {
	svc := NewKeyChainService(WithIterations(1000))

	key := "ABCD-EFGH-JKMN-PQRS"
	salt := bytes.Repeat([]byte{0xAB}, 16)

	k1 := svc.GenerateKEK(key, salt)
	k2 := svc.GenerateKEK(key, salt)
	if !bytes.Equal(k1, k2) {
		t.Fatalf("KEK must be deterministic for the same key and salt")
	}
	if len(k1) != 32 {
		t.Fatalf("KEK length = %d, want 32", len(k1))
	}

	other := svc.GenerateKEK(key, bytes.Repeat([]byte{0xCD}, 16))
	if bytes.Equal(k1, other) {
		t.Fatalf("KEK must depend on the salt")
	}
}

func TestGenerateKEK_DependsOnIterations(t *testing.T) {
	salt := bytes.Repeat([]byte{0x01}, 16)

	fast := NewKeyChainService(WithIterations(1000)).GenerateKEK("k", salt)
	slow := NewKeyChainService(WithIterations(2000)).GenerateKEK("k", salt)
	if bytes.Equal(fast, slow) {
		t.Fatalf("different work factors must give different KEKs")
	}
}

func TestWithIterations_IgnoresNonPositive(t *testing.T) {
	svc := NewKeyChainService(WithIterations(0)).(*keyChainService)
	if svc.iterations != DefaultPBKDF2Iterations {
		t.Fatalf("iterations = %d, want %d", svc.iterations, DefaultPBKDF2Iterations)
	}
}

func TestWrapUnwrapDEK_RoundTrip(t *testing.T) {
	svc := NewKeyChainService()

	dek, _ := svc.GenerateDEK()
	kek := bytes.Repeat([]byte{0x42}, 32)

	wrapped, iv, err := svc.WrapDEK(dek, kek)
	if err != nil {
		t.Fatalf("WrapDEK error: %v", err)
	}
	if len(iv) != 12 {
		t.Fatalf("iv length = %d, want 12", len(iv))
	}

	got, err := svc.UnwrapDEK(wrapped, iv, kek)
	if err != nil {
		t.Fatalf("UnwrapDEK error: %v", err)
	}
	if !bytes.Equal(got, dek) {
		t.Fatalf("unwrapped DEK differs from the original")
	}
}

func TestUnwrapDEK_WrongKEK(t *testing.T) {
	svc := NewKeyChainService()

	dek, _ := svc.GenerateDEK()
	wrapped, iv, err := svc.WrapDEK(dek, bytes.Repeat([]byte{0x01}, 32))
	if err != nil {
		t.Fatalf("WrapDEK error: %v", err)
	}

	_, err = svc.UnwrapDEK(wrapped, iv, bytes.Repeat([]byte{0x02}, 32))
	if !errors.Is(err, ErrWrongKey) {
		t.Fatalf("expected ErrWrongKey, got %v", err)
	}
}

func TestUnwrapDEK_BadIV(t *testing.T) {
	svc := NewKeyChainService()

	kek := bytes.Repeat([]byte{0x01}, 32)
	wrapped, _, err := svc.WrapDEK(bytes.Repeat([]byte{0x09}, 32), kek)
	if err != nil {
		t.Fatalf("WrapDEK error: %v", err)
	}

	_, err = svc.UnwrapDEK(wrapped, []byte{1, 2, 3}, kek)
	if !errors.Is(err, ErrCorrupted) {
		t.Fatalf("expected ErrCorrupted, got %v", err)
	}
}
