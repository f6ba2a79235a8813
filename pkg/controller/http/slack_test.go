package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
)

func signBody(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySlackSignature(t *testing.T) {
	secret := "test-secret"
	body := []byte("command=%2Frolesync&text=sync")
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := signBody(secret, ts, body)

	gt.NoError(t, verifySlackSignature(secret, ts, sig, body))
}

func TestVerifySlackSignatureMismatch(t *testing.T) {
	body := []byte("command=%2Frolesync")
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := signBody("other-secret", ts, body)

	gt.Error(t, verifySlackSignature("test-secret", ts, sig, body))
}

func TestVerifySlackSignatureRejectsOldTimestamp(t *testing.T) {
	secret := "test-secret"
	body := []byte("command=%2Frolesync")
	ts := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)
	sig := signBody(secret, ts, body)

	gt.Error(t, verifySlackSignature(secret, ts, sig, body))
}

func TestVerifySlackSignatureMissingHeaders(t *testing.T) {
	gt.Error(t, verifySlackSignature("secret", "", "sig", nil))
	gt.Error(t, verifySlackSignature("secret", "123", "", nil))
	gt.Error(t, verifySlackSignature("secret", "not-a-number", "sig", nil))
}
