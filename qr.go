/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320 // mobile-friendly size

// joinAddress is the telnet URL players connect to. The host comes from
// the request, since the bind address is often 0.0.0.0.
func joinAddress(cfg *Config, r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(r.Host); err == nil {
		host = h
	}

	return "telnet://" + net.JoinHostPort(host, strconv.Itoa(cfg.port))
}

// serveJoinCode generates a PNG QR code for the game's join address.
func serveJoinCode(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		png, err := qrcode.Encode(joinAddress(cfg, r), qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(w)
		_, _ = w.Write(png)
	}
}
