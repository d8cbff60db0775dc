package detail

import (
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"revwhoix-cli/internal/api"
)

// DisplayLayout is how parsed registration dates are shown.
const DisplayLayout = "January 2, 2006 15:04"

// Date keeps the backend string next to the best-effort parsed time.
type Date struct {
	Raw  string     `json:"raw,omitempty"`
	Time *time.Time `json:"parsed,omitempty"`
}

func parseDate(raw string) Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}
	}
	t, err := cast.ToTimeE(raw)
	if err != nil || t.IsZero() {
		return Date{Raw: raw}
	}
	return Date{Raw: raw, Time: &t}
}

// Display returns "Unknown" for a missing date and the raw string for one
// that could not be parsed.
func (d Date) Display() string {
	switch {
	case d.Raw == "":
		return unknown
	case d.Time == nil:
		return d.Raw
	default:
		return d.Time.Format(DisplayLayout)
	}
}

type Contact struct {
	Name         string `json:"name,omitempty"`
	Organization string `json:"organization,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
}

// Available is false for redacted contacts that carry no identifying field.
func (c *Contact) Available() bool {
	return c != nil && (c.Name != "" || c.Organization != "" || c.Email != "")
}

func (c *Contact) Location() string {
	return joinNonEmpty(c.City, c.State, c.Country)
}

type Geo struct {
	Country string   `json:"country,omitempty"`
	Region  string   `json:"region,omitempty"`
	City    string   `json:"city,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
	Org     string   `json:"org,omitempty"`
	ASN     string   `json:"asn,omitempty"`
}

func (g *Geo) Available() bool {
	return g != nil && (g.Country != "" || g.City != "")
}

type MX struct {
	Preference int    `json:"preference"`
	Exchange   string `json:"exchange"`
}

type DNSRecords struct {
	A     []string `json:"a,omitempty"`
	AAAA  []string `json:"aaaa,omitempty"`
	MX    []MX     `json:"mx,omitempty"`
	TXT   []string `json:"txt,omitempty"`
	NS    []string `json:"ns,omitempty"`
	CNAME []string `json:"cname,omitempty"`
}

func (d DNSRecords) Empty() bool {
	return len(d.A) == 0 && len(d.AAAA) == 0 && len(d.MX) == 0 &&
		len(d.TXT) == 0 && len(d.NS) == 0 && len(d.CNAME) == 0
}

// Record is the normalized registration/DNS record of one domain.
type Record struct {
	Domain      string     `json:"domain"`
	Created     Date       `json:"created"`
	Updated     Date       `json:"updated"`
	Expires     Date       `json:"expires"`
	Registrar   string     `json:"registrar,omitempty"`
	Nameservers []string   `json:"nameservers,omitempty"`
	Statuses    []string   `json:"statuses,omitempty"`
	IPAddress   string     `json:"ip_address,omitempty"`
	DNSSEC      string     `json:"dnssec,omitempty"`
	Geo         *Geo       `json:"geolocation,omitempty"`
	DNS         DNSRecords `json:"dns_records"`
	Registrant  *Contact   `json:"registrant,omitempty"`
	Admin       *Contact   `json:"admin,omitempty"`
	Tech        *Contact   `json:"tech,omitempty"`
	RawText     string     `json:"raw_text,omitempty"`
}

// Normalize turns the backend payload into a Record. raw may be nil.
func Normalize(domain string, raw *api.DomainInfoRaw) Record {
	rec := Record{Domain: domain}
	if raw == nil {
		return rec
	}
	rec.Created = parseDate(raw.Created)
	rec.Updated = parseDate(raw.Updated)
	rec.Expires = parseDate(raw.Expires)
	rec.Registrar = strings.TrimSpace(raw.Registrar)
	rec.Nameservers = compact(raw.Nameservers)
	rec.Statuses = compact(raw.Statuses)
	rec.IPAddress = strings.TrimSpace(raw.IPAddress)
	rec.DNSSEC = strings.TrimSpace(raw.DNSSEC)
	rec.Geo = normalizeGeo(raw.Geolocation)
	rec.DNS = normalizeDNS(raw.DNSRecords)
	rec.Registrant = normalizeContact(raw.Registrant)
	rec.Admin = normalizeContact(raw.Admin)
	rec.Tech = normalizeContact(raw.Tech)
	rec.RawText = raw.RawText
	return rec
}

func normalizeContact(raw *api.ContactRaw) *Contact {
	if raw == nil {
		return nil
	}
	c := Contact(*raw)
	return &c
}

func normalizeGeo(raw *api.GeoRaw) *Geo {
	if raw == nil {
		return nil
	}
	g := &Geo{
		Country: raw.Country,
		Region:  raw.Region,
		City:    raw.City,
		Org:     raw.Org,
		Lat:     coordinate(raw.Latitude, raw.Lat),
		Lon:     coordinate(raw.Longitude, raw.Lon),
	}
	if raw.ASN != nil {
		g.ASN = cast.ToString(raw.ASN)
	}
	return g
}

func coordinate(values ...any) *float64 {
	for _, v := range values {
		if v == nil {
			continue
		}
		f, err := cast.ToFloat64E(v)
		if err != nil {
			continue
		}
		return &f
	}
	return nil
}

func normalizeDNS(raw *api.DNSRaw) DNSRecords {
	if raw == nil {
		return DNSRecords{}
	}
	out := DNSRecords{
		A:     compact(raw.A),
		AAAA:  compact(raw.AAAA),
		TXT:   compact(raw.TXT),
		NS:    compact(raw.NS),
		CNAME: compact(raw.CNAME),
	}
	for _, mx := range raw.MX {
		if mx.Exchange == "" {
			continue
		}
		pref, err := cast.ToIntE(mx.Preference)
		if err != nil {
			log.WithField("preference", mx.Preference).Debug("unparsable MX preference")
		}
		out.MX = append(out.MX, MX{Preference: pref, Exchange: mx.Exchange})
	}
	return out
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
