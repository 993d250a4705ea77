package model

// ReplyStatus classifies the outcome of a chat action or message.
type ReplyStatus string

const (
	ReplyIgnored     ReplyStatus = "ignored"     // no pending session
	ReplyPrompt      ReplyStatus = "prompt"      // a session was started
	ReplyLinked      ReplyStatus = "linked"      // wallet saved
	ReplyInvalid     ReplyStatus = "invalid"     // input rejected
	ReplyRetry       ReplyStatus = "retry"       // store failure, session kept
	ReplyToken       ReplyStatus = "token"       // token input accepted
	ReplyNoWallet    ReplyStatus = "no_wallet"   // action needs a linked wallet
	ReplyInfo        ReplyStatus = "info"        // informational answer, no session
	ReplyUnsupported ReplyStatus = "unsupported" // unknown action
)

// Reply is what the chat transport shows to the user.
type Reply struct {
	Status    ReplyStatus        `json:"status"`
	Text      string             `json:"text"`
	Code      string             `json:"code,omitempty"`
	PublicKey string             `json:"publicKey,omitempty"`
	NewUser   bool               `json:"newUser,omitempty"`
	Dashboard *DashboardResponse `json:"dashboard,omitempty"`
}

// ActionRequest represents request for POST /chat/action
type ActionRequest struct {
	UserID int64  `json:"userId"`
	Action string `json:"action"`
}

// MessageRequest represents request for POST /chat/message
type MessageRequest struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Text     string `json:"text"`
}

// ClassifyRequest represents request for POST /wallet/classify
type ClassifyRequest struct {
	Text string `json:"text"`
}

// ClassifyResponse represents response for POST /wallet/classify
type ClassifyResponse struct {
	Kind      string `json:"kind"`
	Reason    string `json:"reason,omitempty"`
	ByteLen   int    `json:"byteLength,omitempty"`
	WordCount int    `json:"wordCount,omitempty"`
}

// DeriveRequest represents request for POST /wallet/derive
type DeriveRequest struct {
	Text   string           `json:"text"`
	Source DerivationSource `json:"source"`
}

// DeriveResponse represents response for POST /wallet/derive
type DeriveResponse struct {
	PublicKey string           `json:"publicKey"`
	Source    DerivationSource `json:"source"`
}

// SecretResponse represents response for GET /wallet/{userID}/secret
type SecretResponse struct {
	ImportKind ImportKind `json:"importKind"`
	Secret     string     `json:"secret"`
}
