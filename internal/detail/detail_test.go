package detail

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revwhoix-cli/internal/api"
)

func fullRaw() *api.DomainInfoRaw {
	return &api.DomainInfoRaw{
		Created:     "2001-05-17T04:00:00Z",
		Updated:     "sometime last spring",
		Registrar:   "Example Registrar, Inc.",
		Nameservers: api.StringList{"ns1.example.com", " ", "ns2.example.com"},
		Statuses:    api.StringList{"clientTransferProhibited"},
		IPAddress:   "93.184.216.34",
		Geolocation: &api.GeoRaw{
			Country:   "United States",
			Region:    "Massachusetts",
			City:      "Norwell",
			Latitude:  42.15,
			Longitude: "-70.8228",
			Org:       "EDGECAST",
			ASN:       "AS15133",
		},
		DNSRecords: &api.DNSRaw{
			A:  []string{"93.184.216.34"},
			MX: []api.MXRaw{{Preference: "10", Exchange: "mail.example.com."}, {Preference: 20.0, Exchange: "alt.example.com."}},
		},
		Registrant: &api.ContactRaw{Name: "Jane Doe", Organization: "Example LLC", City: "Boston", Country: "US"},
		Admin:      &api.ContactRaw{Phone: "+1.5555555555", Country: "US"},
		RawText:    "Domain Name: EXAMPLE.COM",
	}
}

func TestNormalizeDates(t *testing.T) {
	rec := Normalize("example.com", fullRaw())

	require.NotNil(t, rec.Created.Time)
	assert.Equal(t, 2001, rec.Created.Time.Year())
	assert.Equal(t, "May 17, 2001 04:00", rec.Created.Display())

	assert.Nil(t, rec.Updated.Time)
	assert.Equal(t, "sometime last spring", rec.Updated.Display())

	assert.Equal(t, "Unknown", rec.Expires.Display())
}

func TestNormalizeCoercesLooseTypes(t *testing.T) {
	rec := Normalize("example.com", fullRaw())

	assert.Equal(t, []string{"ns1.example.com", "ns2.example.com"}, rec.Nameservers)
	assert.Equal(t, []MX{{10, "mail.example.com."}, {20, "alt.example.com."}}, rec.DNS.MX)
	require.NotNil(t, rec.Geo.Lat)
	require.NotNil(t, rec.Geo.Lon)
	assert.Equal(t, 42.15, *rec.Geo.Lat)
	assert.Equal(t, -70.8228, *rec.Geo.Lon)
	assert.Equal(t, "AS15133", rec.Geo.ASN)
}

func TestNormalizeNilPayload(t *testing.T) {
	rec := Normalize("example.com", nil)
	assert.Equal(t, "example.com", rec.Domain)
	assert.True(t, rec.DNS.Empty())
	assert.Nil(t, rec.Registrant)
}

func TestBuildViewSummaryAndTabs(t *testing.T) {
	rec := Normalize("example.com", fullRaw())
	v := BuildView(&rec)

	assert.False(t, v.Fallback())
	assert.Equal(t, TabRegistrant, v.Active)
	assert.Equal(t, Field{"Registrar", "Example Registrar, Inc."}, v.Summary[5])
	assert.Equal(t, Field{"DNSSEC", "Not available"}, v.Summary[6])

	var ids []TabID
	for _, tab := range v.Tabs {
		ids = append(ids, tab.ID)
	}
	assert.Equal(t, Tabs, ids)

	reg, ok := v.Tab(TabRegistrant)
	require.True(t, ok)
	assert.Empty(t, reg.Placeholder)
	assert.Contains(t, reg.Fields, Field{"Location", "Boston, US"})

	// phone and country alone do not make a contact
	admin, _ := v.Tab(TabAdmin)
	assert.Equal(t, "Contact information not available or protected", admin.Placeholder)
	assert.Empty(t, admin.Fields)

	tech, _ := v.Tab(TabTech)
	assert.Equal(t, "Contact information not available or protected", tech.Placeholder)

	loc, _ := v.Tab(TabLocation)
	assert.Equal(t, []Field{
		{"Location", "Norwell, Massachusetts, United States"},
		{"Coordinates", "42.15, -70.8228"},
		{"Organization", "EDGECAST"},
		{"ASN", "AS15133"},
	}, loc.Fields)
}

func TestDNSTabOnlyShowsPresentGroups(t *testing.T) {
	rec := Normalize("example.com", fullRaw())
	dns, _ := BuildView(&rec).Tab(TabDNS)

	require.Len(t, dns.Sections, 2)
	assert.Equal(t, "A Records (IPv4)", dns.Sections[0].Title)
	assert.Equal(t, Section{"MX Records (Mail)", []string{"Priority 10: mail.example.com.", "Priority 20: alt.example.com."}}, dns.Sections[1])
	assert.Empty(t, dns.Placeholder)
}

func TestEmptyRecordUsesPlaceholders(t *testing.T) {
	rec := Normalize("bare.com", &api.DomainInfoRaw{DNSRecords: &api.DNSRaw{A: []string{}}})
	v := BuildView(&rec)

	want := map[TabID]string{
		TabRegistrant:  "Contact information not available or protected",
		TabAdmin:       "Contact information not available or protected",
		TabTech:        "Contact information not available or protected",
		TabNameservers: "No nameservers found",
		TabStatus:      "No status information available",
		TabLocation:    "Location information not available",
		TabDNS:         "No DNS records found",
	}
	for id, placeholder := range want {
		tab, ok := v.Tab(id)
		require.True(t, ok, id)
		assert.Equal(t, placeholder, tab.Placeholder, id)
	}
	assert.Equal(t, Field{"IP Address", "Unknown"}, v.Summary[1])
	assert.False(t, v.HasRaw())
}

func TestGeoWithoutCountryOrCityIsUnavailable(t *testing.T) {
	rec := Normalize("x.com", &api.DomainInfoRaw{Geolocation: &api.GeoRaw{Org: "Some ISP", Latitude: 1.0, Longitude: 2.0}})
	loc, _ := BuildView(&rec).Tab(TabLocation)
	assert.Equal(t, "Location information not available", loc.Placeholder)
}

func TestTabSelection(t *testing.T) {
	rec := Normalize("example.com", fullRaw())
	v := BuildView(&rec)

	require.NoError(t, v.Select(TabDNS))
	tab, ok := v.ActiveTab()
	require.True(t, ok)
	assert.Equal(t, TabDNS, tab.ID)

	assert.ErrorIs(t, v.Select("billing"), ErrUnknownTab)
	assert.Equal(t, TabDNS, v.Active)

	v.Cycle(1)
	assert.Equal(t, TabRegistrant, v.Active)
	v.Cycle(-1)
	assert.Equal(t, TabDNS, v.Active)
}

func TestParseTab(t *testing.T) {
	id, err := ParseTab("tech")
	require.NoError(t, err)
	assert.Equal(t, TabTech, id)

	id, err = ParseTab("Name Servers")
	require.NoError(t, err)
	assert.Equal(t, TabNameservers, id)

	_, err = ParseTab("billing")
	assert.ErrorIs(t, err, ErrUnknownTab)
}

func TestRawTextHiddenByDefault(t *testing.T) {
	rec := Normalize("example.com", fullRaw())
	v := BuildView(&rec)

	assert.True(t, v.HasRaw())
	assert.False(t, v.RawVisible)
	assert.Equal(t, "Show Raw Data", v.RawToggleLabel())
	assert.True(t, v.ToggleRaw())
	assert.Equal(t, "Hide Raw Data", v.RawToggleLabel())
	assert.False(t, v.ToggleRaw())
}

type fakeInfo struct {
	mu    sync.Mutex
	calls int
	raw   map[string]*api.DomainInfoRaw
	err   error
}

func (f *fakeInfo) DomainInfo(ctx context.Context, domain string) (*api.DomainInfoRaw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.raw[domain], nil
}

func TestFetchFailureDegradesToFallback(t *testing.T) {
	client := &fakeInfo{err: &api.APIError{StatusCode: 500, Message: "Failed to fetch domain information"}}
	f := NewFetcher(client)

	_, err := f.Fetch(context.Background(), "down.com")
	var detailErr *Error
	require.True(t, errors.As(err, &detailErr))
	assert.Equal(t, "down.com", detailErr.Domain)

	v := f.View(context.Background(), "down.com")
	assert.True(t, v.Fallback())
	assert.Equal(t, "Failed to fetch domain information", v.Error)
	assert.Equal(t, []Field{{"Domain", "down.com"}, {"Status", UnavailableStatus}}, v.Summary)
	_, ok := v.ActiveTab()
	assert.False(t, ok)
}

func TestFetchIsNotCached(t *testing.T) {
	client := &fakeInfo{raw: map[string]*api.DomainInfoRaw{"a.com": {Registrar: "R"}}}
	f := NewFetcher(client)

	_, err := f.Fetch(context.Background(), "a.com")
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), "a.com")
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
}

func TestViewerDiscardsSupersededFetch(t *testing.T) {
	client := &fakeInfo{raw: map[string]*api.DomainInfoRaw{
		"a.com": {Registrar: "A"},
		"b.com": {Registrar: "B"},
	}}
	viewer := NewViewer(NewFetcher(client))

	reqA := viewer.Begin("a.com")
	reqB := viewer.Begin("b.com")
	viewA := viewer.Run(context.Background(), reqA)
	viewB := viewer.Run(context.Background(), reqB)

	assert.True(t, viewer.Apply(reqB, viewB))
	assert.False(t, viewer.Apply(reqA, viewA))
	require.NotNil(t, viewer.Current())
	assert.Equal(t, "b.com", viewer.Current().Domain)
}

func TestViewerOpenAndClose(t *testing.T) {
	client := &fakeInfo{raw: map[string]*api.DomainInfoRaw{"a.com": {Registrar: "A"}}}
	viewer := NewViewer(NewFetcher(client))

	v, err := viewer.Open(context.Background(), "a.com")
	require.NoError(t, err)
	assert.Same(t, v, viewer.Current())

	req := viewer.Begin("a.com")
	assert.Nil(t, viewer.Current())
	viewer.Close()
	assert.False(t, viewer.Apply(req, v))
	assert.Nil(t, viewer.Current())
}
