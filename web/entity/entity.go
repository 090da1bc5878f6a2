// Package entity defines data structures used by the web layer.
package entity

// Msg is the envelope for admin-API responses with a success flag, optional
// message text and optional data object.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg,omitempty"`
	Obj     any    `json:"obj,omitempty"`
}

// Status is the admin status snapshot.
type Status struct {
	Version  string  `json:"version"`
	Uptime   uint64  `json:"uptime"` // seconds
	Cpu      float64 `json:"cpu"`    // percent
	MemUsed  uint64  `json:"memUsed"`
	MemTotal uint64  `json:"memTotal"`
	Requests int64   `json:"requests"`
}
