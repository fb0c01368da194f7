package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestValidateSignatureAcceptsValid(t *testing.T) {
	body := []byte(`{"events":[]}`)
	signature := signBody("secret", body)
	if !ValidateSignature("secret", signature, body) {
		t.Fatalf("valid signature rejected")
	}
}

func TestValidateSignatureRejectsTamperedBody(t *testing.T) {
	signature := signBody("secret", []byte(`{"events":[]}`))
	if ValidateSignature("secret", signature, []byte(`{"events":[{}]}`)) {
		t.Fatalf("tampered body accepted")
	}
}

func TestValidateSignatureRejectsWrongSecret(t *testing.T) {
	body := []byte(`{"events":[]}`)
	signature := signBody("secret", body)
	if ValidateSignature("other", signature, body) {
		t.Fatalf("signature from other secret accepted")
	}
}

func TestValidateSignatureRejectsMalformedInput(t *testing.T) {
	body := []byte(`{}`)
	if ValidateSignature("", signBody("secret", body), body) {
		t.Fatalf("empty secret accepted")
	}
	if ValidateSignature("secret", "", body) {
		t.Fatalf("empty signature accepted")
	}
	if ValidateSignature("secret", "not-base64!!", body) {
		t.Fatalf("malformed base64 accepted")
	}
}
