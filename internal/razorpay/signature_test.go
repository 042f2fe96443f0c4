package razorpay

import "testing"

// Signature computed by the gateway over "<orderID>|<paymentID>" with the key
// secret "test_key_secret".
const (
	testSecret    = "test_key_secret"
	testOrderID   = "order_MkCN3gpF9dRKnU"
	testPaymentID = "pay_MkCPQ4aJxiPWLk"
	testSignature = "442f494d34a2268d407778fb90a7b32e446e62a5255a0c697794681cadc46f06"
)

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		secret    string
		orderID   string
		paymentID string
		signature string
		want      bool
	}{
		{
			name:      "valid signature",
			secret:    testSecret,
			orderID:   testOrderID,
			paymentID: testPaymentID,
			signature: testSignature,
			want:      true,
		},
		{
			name:      "tampered signature",
			secret:    testSecret,
			orderID:   testOrderID,
			paymentID: testPaymentID,
			signature: "0" + testSignature[1:],
			want:      false,
		},
		{
			name:      "wrong secret",
			secret:    "other_secret",
			orderID:   testOrderID,
			paymentID: testPaymentID,
			signature: testSignature,
			want:      false,
		},
		{
			name:      "payment id swapped",
			secret:    testSecret,
			orderID:   testOrderID,
			paymentID: "pay_other",
			signature: testSignature,
			want:      false,
		},
		{
			name:      "empty order id",
			secret:    testSecret,
			orderID:   "",
			paymentID: testPaymentID,
			signature: testSignature,
			want:      false,
		},
		{
			name:      "empty signature",
			secret:    testSecret,
			orderID:   testOrderID,
			paymentID: testPaymentID,
			signature: "",
			want:      false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := VerifySignature(tc.secret, tc.orderID, tc.paymentID, tc.signature)
			if got != tc.want {
				t.Fatalf("VerifySignature() = %v, want %v", got, tc.want)
			}
		})
	}
}
