/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
)

func boardPage(cfg *Config, st gameState) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<meta http-equiv="refresh" content="5">`)
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`body{font-family:monospace;margin:2em;}`)
	htmlBody.WriteString(`table{border-collapse:collapse;}td,th{border:1px solid #999;padding:.3em .6em;text-align:right;}`)
	htmlBody.WriteString(`tr.turn{font-weight:bold;}</style>`)
	htmlBody.WriteString(`<title>Mancala</title></head><body>`)

	htmlBody.WriteString(fmt.Sprintf("<h1>Mancala</h1><p>Game %s, running since %s.</p>",
		html.EscapeString(st.ID),
		st.StartedAt.Format(time.RFC1123),
	))

	switch {
	case st.Board.Over:
		htmlBody.WriteString("<p>Game over!</p>")
	case len(st.Board.Players) == 0:
		htmlBody.WriteString("<p>Waiting for players.</p>")
	default:
		htmlBody.WriteString(fmt.Sprintf("<p>It is %s's move.</p>", html.EscapeString(st.Board.Turn)))
	}

	if len(st.Board.Players) > 0 {
		htmlBody.WriteString("<table><tr><th>Player</th>")
		for i := range st.Board.Players[0].Pits {
			htmlBody.WriteString(fmt.Sprintf("<th>[%d]</th>", i))
		}
		htmlBody.WriteString("<th>End pit</th><th>Total</th></tr>")

		for _, p := range st.Board.Players {
			if p.Name == st.Board.Turn {
				htmlBody.WriteString(`<tr class="turn">`)
			} else {
				htmlBody.WriteString("<tr>")
			}
			htmlBody.WriteString(fmt.Sprintf("<td>%s</td>", html.EscapeString(p.Name)))
			for _, n := range p.Pits {
				htmlBody.WriteString(fmt.Sprintf("<td>%d</td>", n))
			}
			htmlBody.WriteString(fmt.Sprintf("<td>%d</td><td>%d</td></tr>", p.Store, p.Total))
		}
		htmlBody.WriteString("</table>")
	}

	htmlBody.WriteString(fmt.Sprintf("<p>%d connected, %d still choosing a name.</p>", st.Connections, st.Pending))
	htmlBody.WriteString(fmt.Sprintf(`<p><img src="%s/qr" alt="Join code" width="%d" height="%d"></p>`,
		strings.TrimSuffix(cfg.prefix, "/"), qrSize, qrSize))
	htmlBody.WriteString("</body></html>")

	return htmlBody.String()
}

func serveHomePage(cfg *Config, h *Hub, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(w)

		written, err := w.Write([]byte(boardPage(cfg, h.state())))
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Board page (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}
