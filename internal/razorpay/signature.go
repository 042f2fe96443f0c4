package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature recomputes the gateway's payment-confirmation signature
// and compares it against the supplied one. The gateway signs
// "<orderID>|<paymentID>" with HMAC-SHA256 over the key secret and sends the
// hex digest back through the client.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
