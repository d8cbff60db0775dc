package api

import (
	"encoding/json"
	"strings"
)

const StatusSuccess = "success"

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Keyword        string `json:"keyword"`
	TryAlternative bool   `json:"try_alternative"`
}

// SearchResponse is returned by /search. Error payloads reuse Status and Message.
type SearchResponse struct {
	Status  string   `json:"status"`
	Keyword string   `json:"keyword"`
	Count   int      `json:"count"`
	Domains []string `json:"domains"`
	Note    string   `json:"note,omitempty"`
	Message string   `json:"message,omitempty"`
}

// ErrorResponse is the body of any non-2xx reply.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DomainInfoResponse is returned by /domain-info.
type DomainInfoResponse struct {
	Status  string         `json:"status"`
	Domain  string         `json:"domain,omitempty"`
	Info    *DomainInfoRaw `json:"info,omitempty"`
	Message string         `json:"message,omitempty"`
}

// DomainInfoRaw is the loosely structured registration record as the backend sends it.
// Anything may be missing or null.
type DomainInfoRaw struct {
	Created      string      `json:"created"`
	Updated      string      `json:"updated"`
	Expires      string      `json:"expires"`
	Registrar    string      `json:"registrar"`
	Nameservers  StringList  `json:"nameservers"`
	Statuses     StringList  `json:"statuses"`
	IPAddress    string      `json:"ip_address"`
	DNSSEC       string      `json:"dnssec"`
	Geolocation  *GeoRaw     `json:"geolocation"`
	DNSRecords   *DNSRaw     `json:"dns_records"`
	Registrant   *ContactRaw `json:"registrant"`
	Admin        *ContactRaw `json:"admin"`
	Tech         *ContactRaw `json:"tech"`
	RawText      string      `json:"rawText"`
	IsRegistered bool        `json:"is_registered"`
}

type ContactRaw struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

// GeoRaw carries coordinates and ASN as whatever JSON type the geolocation provider used.
type GeoRaw struct {
	Country   string `json:"country"`
	Region    string `json:"region"`
	City      string `json:"city"`
	Postal    string `json:"postal"`
	Latitude  any    `json:"latitude"`
	Longitude any    `json:"longitude"`
	Lat       any    `json:"lat"`
	Lon       any    `json:"lon"`
	Org       string `json:"org"`
	ASN       any    `json:"asn"`
}

type DNSRaw struct {
	A     []string `json:"a"`
	AAAA  []string `json:"aaaa"`
	MX    []MXRaw  `json:"mx"`
	TXT   []string `json:"txt"`
	NS    []string `json:"ns"`
	CNAME []string `json:"cname"`
}

// MXRaw preference arrives as a number or a numeric string depending on the resolver used.
type MXRaw struct {
	Preference any    `json:"preference"`
	Exchange   string `json:"exchange"`
}

// StringList accepts either a JSON string or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if strings.TrimSpace(single) == "" {
		*l = nil
		return nil
	}
	*l = StringList{single}
	return nil
}
