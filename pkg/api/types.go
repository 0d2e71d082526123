// Package api defines the registrar.v1 RPC surface: messages, the JSON codec
// and the Connect handler and client constructors.
package api

// Record is a registrant entry on the wire.
type Record struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

// ListItem is one entry of a rendered list.
type ListItem struct {
	Placeholder bool   `json:"placeholder,omitempty"`
	Text        string `json:"text,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	DeleteKey   string `json:"deleteKey,omitempty"`
}

type ListRecordsRequest struct{}

type ListRecordsResponse struct {
	Records []Record   `json:"records"`
	Items   []ListItem `json:"items"`
}

type RegisterRecordRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RegisterRecordResponse struct {
	Record  Record     `json:"record"`
	Items   []ListItem `json:"items"`
	Notices []string   `json:"notices,omitempty"`
}

type DeleteRecordRequest struct {
	Email string `json:"email"`
	// Confirmed is the caller's answer to the delete confirmation.
	Confirmed bool `json:"confirmed"`
	// SearchTerm is the active search, re-applied after the delete.
	SearchTerm string `json:"searchTerm,omitempty"`
}

type DeleteRecordResponse struct {
	Removed int32      `json:"removed"`
	Items   []ListItem `json:"items"`
	Notices []string   `json:"notices,omitempty"`
}

type DeleteAllRecordsRequest struct {
	Confirmed bool `json:"confirmed"`
}

type DeleteAllRecordsResponse struct {
	Deleted bool       `json:"deleted"`
	Items   []ListItem `json:"items"`
	Notices []string   `json:"notices,omitempty"`
}

type SearchRecordsRequest struct {
	Term string `json:"term"`
}

type SearchRecordsResponse struct {
	Records []Record   `json:"records"`
	Items   []ListItem `json:"items"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	// ExpiresAt is the token expiry as Unix seconds.
	ExpiresAt int64 `json:"expiresAt"`
}
