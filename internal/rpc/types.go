package rpc

// RPCError represents a JSON-RPC error response
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return e.Message
}

// AccountValue is the value field of a getAccountInfo response.
// Data is a [payload, encoding] pair; only base64 is requested.
type AccountValue struct {
	Owner      string   `json:"owner"`
	Data       []string `json:"data"`
	Lamports   uint64   `json:"lamports"`
	Executable bool     `json:"executable"`
	RentEpoch  uint64   `json:"rentEpoch"`
}

// AccountInfoResult is the result field of a getAccountInfo response
type AccountInfoResult struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value *AccountValue `json:"value"`
}

// AccountInfoResponse is the full getAccountInfo response envelope
type AccountInfoResponse struct {
	Result AccountInfoResult `json:"result"`
	Error  *RPCError         `json:"error"`
}
