package domain

import "time"

// LiveSession is a short-lived, single-use credential for a streaming model session.
type LiveSession struct {
	Token      string    `json:"token"`
	Model      string    `json:"model"`
	WSEndpoint string    `json:"wsEndpoint"`
	ExpireTime time.Time `json:"expireTime"`
}
