package middleware

import "net/http"

// RequestSeqHeader carries a client-chosen sequence number for incremental
// search requests.
const RequestSeqHeader = "X-Request-Seq"

// UserIDHeader identifies the caller for per-user endpoints (saved trips).
const UserIDHeader = "X-User-ID"

// EchoRequestSeq copies X-Request-Seq from the request onto the response so
// clients can drop responses to superseded searches.
func EchoRequestSeq(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seq := r.Header.Get(RequestSeqHeader); seq != "" {
			w.Header().Set(RequestSeqHeader, seq)
		}
		next.ServeHTTP(w, r)
	})
}
