package detail

import (
	"errors"
	"fmt"
)

const (
	unknown      = "Unknown"
	notAvailable = "Not available"

	// UnavailableStatus is shown when the record could not be fetched.
	UnavailableStatus = "Unable to fetch details"
)

var ErrUnknownTab = errors.New("unknown tab")

type TabID string

const (
	TabRegistrant  TabID = "registrant"
	TabAdmin       TabID = "admin"
	TabTech        TabID = "tech"
	TabNameservers TabID = "nameservers"
	TabStatus      TabID = "status"
	TabLocation    TabID = "location"
	TabDNS         TabID = "dns"
)

// Tabs lists every tab of the detail view in display order.
var Tabs = []TabID{TabRegistrant, TabAdmin, TabTech, TabNameservers, TabStatus, TabLocation, TabDNS}

var tabTitles = map[TabID]string{
	TabRegistrant:  "Registrant",
	TabAdmin:       "Admin",
	TabTech:        "Technical",
	TabNameservers: "Name Servers",
	TabStatus:      "Status",
	TabLocation:    "Location",
	TabDNS:         "DNS Records",
}

func (id TabID) Title() string {
	if t, ok := tabTitles[id]; ok {
		return t
	}
	return string(id)
}

// ParseTab accepts a tab id or its title, case-sensitively on the id.
func ParseTab(s string) (TabID, error) {
	for _, id := range Tabs {
		if string(id) == s || id.Title() == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

type Field struct {
	Label string
	Value string
}

// Section is a titled list inside a tab, e.g. one DNS record group.
type Section struct {
	Title string
	Items []string
}

// Tab is one pane of the detail view. When Placeholder is set the tab has
// nothing else to show.
type Tab struct {
	ID          TabID
	Heading     string
	Fields      []Field
	Items       []string
	Sections    []Section
	Placeholder string
}

// View is the presentation model of one detail panel. It is built fresh for
// every fetch and owned by whoever opened it.
type View struct {
	Domain     string
	Error      string
	Summary    []Field
	Tabs       []Tab
	Active     TabID
	RawText    string
	RawVisible bool
	Record     *Record
}

// BuildView lays out rec as the tabbed detail panel, registrant tab active,
// raw text hidden.
func BuildView(rec *Record) *View {
	v := &View{
		Domain: rec.Domain,
		Record: rec,
		Active: TabRegistrant,
		Summary: []Field{
			{"Domain Name", rec.Domain},
			{"IP Address", orDefault(rec.IPAddress, unknown)},
			{"Created", rec.Created.Display()},
			{"Last Updated", rec.Updated.Display()},
			{"Expires", rec.Expires.Display()},
			{"Registrar", orDefault(rec.Registrar, unknown)},
			{"DNSSEC", orDefault(rec.DNSSEC, notAvailable)},
		},
		RawText: rec.RawText,
	}
	v.Tabs = []Tab{
		contactTab(TabRegistrant, "Registrant Information", rec.Registrant),
		contactTab(TabAdmin, "Administrative Contact", rec.Admin),
		contactTab(TabTech, "Technical Contact", rec.Tech),
		listTab(TabNameservers, "Name Servers", rec.Nameservers, "No nameservers found"),
		listTab(TabStatus, "Domain Status", rec.Statuses, "No status information available"),
		locationTab(rec.Geo),
		dnsTab(rec.DNS),
	}
	return v
}

// FallbackView is the minimal panel shown when the record could not be fetched.
func FallbackView(domain string, err error) *View {
	msg := "An error occurred while fetching domain information"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &View{
		Domain: domain,
		Error:  msg,
		Summary: []Field{
			{"Domain", domain},
			{"Status", UnavailableStatus},
		},
	}
}

func contactTab(id TabID, heading string, c *Contact) Tab {
	t := Tab{ID: id, Heading: heading}
	if !c.Available() {
		t.Placeholder = "Contact information not available or protected"
		return t
	}
	add := func(label, value string) {
		if value != "" {
			t.Fields = append(t.Fields, Field{label, value})
		}
	}
	add("Name", c.Name)
	add("Organization", c.Organization)
	add("Email", c.Email)
	add("Phone", c.Phone)
	add("Location", c.Location())
	return t
}

func listTab(id TabID, heading string, items []string, placeholder string) Tab {
	t := Tab{ID: id, Heading: heading, Items: items}
	if len(items) == 0 {
		t.Placeholder = placeholder
	}
	return t
}

func locationTab(g *Geo) Tab {
	t := Tab{ID: TabLocation, Heading: "Server Location"}
	if !g.Available() {
		t.Placeholder = "Location information not available"
		return t
	}
	if loc := joinNonEmpty(g.City, g.Region, g.Country); loc != "" {
		t.Fields = append(t.Fields, Field{"Location", loc})
	}
	if g.Lat != nil && g.Lon != nil {
		t.Fields = append(t.Fields, Field{"Coordinates", formatFloat(*g.Lat) + ", " + formatFloat(*g.Lon)})
	}
	if g.Org != "" {
		t.Fields = append(t.Fields, Field{"Organization", g.Org})
	}
	if g.ASN != "" {
		t.Fields = append(t.Fields, Field{"ASN", g.ASN})
	}
	return t
}

func dnsTab(d DNSRecords) Tab {
	t := Tab{ID: TabDNS, Heading: "DNS Records"}
	group := func(title string, items []string) {
		if len(items) > 0 {
			t.Sections = append(t.Sections, Section{Title: title, Items: items})
		}
	}
	group("A Records (IPv4)", d.A)
	group("AAAA Records (IPv6)", d.AAAA)
	var mx []string
	for _, r := range d.MX {
		mx = append(mx, fmt.Sprintf("Priority %d: %s", r.Preference, r.Exchange))
	}
	group("MX Records (Mail)", mx)
	group("TXT Records", d.TXT)
	group("NS Records", d.NS)
	group("CNAME Records", d.CNAME)
	if len(t.Sections) == 0 {
		t.Placeholder = "No DNS records found"
	}
	return t
}

// Fallback reports whether the view stands in for a record that failed to load.
func (v *View) Fallback() bool {
	return v.Record == nil
}

// Select makes id the active tab. It is a local change only.
func (v *View) Select(id TabID) error {
	for _, t := range v.Tabs {
		if t.ID == id {
			v.Active = id
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTab, id)
}

// Cycle moves the active tab by delta, wrapping around.
func (v *View) Cycle(delta int) {
	n := len(v.Tabs)
	if n == 0 {
		return
	}
	idx := 0
	for i, t := range v.Tabs {
		if t.ID == v.Active {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%n + n) % n
	v.Active = v.Tabs[idx].ID
}

// ActiveTab returns the active tab; ok is false for a fallback view.
func (v *View) ActiveTab() (Tab, bool) {
	for _, t := range v.Tabs {
		if t.ID == v.Active {
			return t, true
		}
	}
	return Tab{}, false
}

func (v *View) Tab(id TabID) (Tab, bool) {
	for _, t := range v.Tabs {
		if t.ID == id {
			return t, true
		}
	}
	return Tab{}, false
}

func (v *View) HasRaw() bool {
	return v.RawText != ""
}

// ToggleRaw flips raw text visibility and returns the new state.
func (v *View) ToggleRaw() bool {
	if !v.HasRaw() {
		return false
	}
	v.RawVisible = !v.RawVisible
	return v.RawVisible
}

func (v *View) RawToggleLabel() string {
	if v.RawVisible {
		return "Hide Raw Data"
	}
	return "Show Raw Data"
}

// VisitURL is the address the "visit" action opens.
func (v *View) VisitURL() string {
	return "https://" + v.Domain
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
