// Package websocket streams rendered generations to browser clients.
//
// The Hub owns the set of connected clients and fans each Frame out to all
// of them. Clients that cannot keep up are dropped rather than slowing the
// simulation down. Incoming client messages are read only to service
// pings and detect disconnects.
package websocket
