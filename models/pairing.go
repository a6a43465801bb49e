// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// QR payload envelope constants. Version is bumped whenever the payload
// layout changes so older web clients can reject codes they cannot parse.
const (
	QRPayloadType    = "noteleaf-pair"
	QRPayloadVersion = 1
)

// PairingSession is a short-lived credential pair that lets a secondary
// client discover and authenticate to a primary device acting as a local
// server. It is created server-side, embedded in a QR payload, and consumed
// exactly once per secondary client per physical connection attempt.
type PairingSession struct {
	SessionID    string    `json:"sessionId"`
	Token        string    `json:"token"`
	RelayAddress string    `json:"relayAddress"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// QRPayload is the JSON document rendered as a QR code on the primary
// device and scanned by the secondary client.
type QRPayload struct {
	Type         string `json:"type"`
	Version      int    `json:"version"`
	SessionID    string `json:"sessionId"`
	Token        string `json:"token"`
	RelayAddress string `json:"relayAddress"`
}

// Relay signaling message types. The relay is rendezvous-only: it carries
// exactly one phone-ready message per session and never application data.
const (
	RelayPhoneReady = "phone-ready"
)

// RelayMessage is a signaling frame exchanged over the rendezvous relay.
type RelayMessage struct {
	Type string `json:"type"`

	// IP and Port are the primary device's local network address, present
	// only on phone-ready frames.
	IP   string `json:"ip,omitempty"`
	Port int    `json:"port,omitempty"`
}

// WebSessionRecord is the session persisted on the secondary client after a
// successful handshake. Its presence alone is sufficient to attempt session
// restoration on next launch.
type WebSessionRecord struct {
	PhoneURL  string    `json:"phoneUrl"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
