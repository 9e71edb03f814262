package api

import (
	"encoding/xml"
	"net/http"
)

// twiml is the messaging-webhook reply envelope: a single <Message>
// inside a <Response>.
type twiml struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// writeTwiML renders the reply text as an XML envelope. Always 200: the
// webhook contract must not fail the outer request over a domain error.
func writeTwiML(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	xml.NewEncoder(w).Encode(twiml{Message: text})
}
