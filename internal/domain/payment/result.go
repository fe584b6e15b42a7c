// internal/domain/payment/result.go
package payment

// Gateway names a payment processor as recorded in payment rows
type Gateway string

const (
	GatewayBraintree Gateway = "BrainTree"
	GatewayRazorpay  Gateway = "Razorpay"
)

// Result is the normalized answer of a gateway: either Success or Failure
type Result interface {
	isResult()
}

// Success means the gateway captured the payment
type Success struct {
	TransactionID string
	Gateway       Gateway
	Method        string
	Message       string
}

// Failure means the gateway declined or the attempt was abandoned
type Failure struct {
	Reason        string
	Gateway       Gateway
	TransactionID string
	Method        string
}

func (Success) isResult() {}
func (Failure) isResult() {}

// facts flattens a result for bookkeeping
type facts struct {
	succeeded     bool
	gateway       Gateway
	method        string
	transactionID string
	message       string
}

func describe(result Result) facts {
	switch r := result.(type) {
	case Success:
		return facts{succeeded: true, gateway: r.Gateway, method: r.Method, transactionID: r.TransactionID, message: r.Message}
	case *Success:
		return describe(*r)
	case Failure:
		return facts{gateway: r.Gateway, method: r.Method, transactionID: r.TransactionID, message: r.Reason}
	case *Failure:
		return describe(*r)
	default:
		return facts{message: "unknown payment result"}
	}
}
