package e2e

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holidaze/internal/api"
	"holidaze/internal/availability"
	"holidaze/internal/ical"
	jwtsvc "holidaze/internal/pkg/jwt"
	"holidaze/internal/session"
	"holidaze/internal/stub"
)

type suite struct {
	server *httptest.Server
	store  *session.Store
	client *api.Client
}

func setupSuite(t *testing.T) *suite {
	t.Helper()

	db, err := stub.Connect(":memory:")
	require.NoError(t, err, "failed to open test database")

	gin.SetMode(gin.TestMode)
	j := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	server := httptest.NewServer(stub.NewRouter(db, j))
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	client := api.NewClient(server.URL, "test-key", 5*time.Second, store)

	return &suite{server: server, store: store, client: client}
}

// newClient gives a second identity against the same stub, with its own
// session file, the way a second browser would look.
func (s *suite) newClient(t *testing.T) (*api.Client, *session.Store) {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	return api.NewClient(s.server.URL, "test-key", 5*time.Second, store), store
}

func registerAndLogin(t *testing.T, client *api.Client, name, email string, manager bool) {
	t.Helper()
	ctx := context.Background()

	_, err := client.Register(ctx, api.RegisterRequest{
		Name:         name,
		Email:        email,
		Password:     "password1234",
		VenueManager: manager,
	})
	require.NoError(t, err)

	_, err = client.Login(ctx, api.LoginRequest{Email: email, Password: "password1234"})
	require.NoError(t, err)
}

func TestFullBookingFlow(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	// venue manager lists a cabin
	registerAndLogin(t, s.client, "owner", "owner@stud.noroff.no", true)
	venue, err := s.client.CreateVenue(ctx, api.VenueRequest{
		Name:        "Seaside Cabin",
		Description: "Cabin on the shore",
		Price:       100,
		MaxGuests:   4,
		Location:    api.Location{City: "Bergen", Country: "Norway"},
	})
	require.NoError(t, err)

	// a guest books it
	guestClient, guestStore := s.newClient(t)
	registerAndLogin(t, guestClient, "guest", "guest@stud.noroff.no", false)
	require.NotNil(t, guestStore.Get())

	from := time.Date(2027, 6, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2027, 6, 13, 0, 0, 0, 0, time.UTC)
	booking, err := guestClient.CreateBooking(ctx, api.BookingRequest{
		DateFrom: from, DateTo: to, Guests: 2, VenueID: venue.ID,
	})
	require.NoError(t, err)

	nights := availability.Nights(from, to)
	assert.Equal(t, 3, nights)
	assert.Equal(t, 300.0, availability.TotalPrice(nights, venue.Price))

	// the venue detail now carries the booking and blocks those days
	fetched, err := guestClient.GetVenue(ctx, venue.ID, true, true)
	require.NoError(t, err)
	require.Len(t, fetched.Bookings, 1)
	require.NotNil(t, fetched.Owner)
	assert.Equal(t, "owner", fetched.Owner.Name)

	excluded := availability.ExcludedDays(api.BookedRanges(fetched.Bookings))
	assert.Len(t, excluded, 4)
	assert.True(t, availability.IsExcluded(from, excluded))
	assert.True(t, availability.IsExcluded(to, excluded))

	// the guest can cancel, freeing the dates
	require.NoError(t, guestClient.DeleteBooking(ctx, booking.ID))
	fetched, err = guestClient.GetVenue(ctx, venue.ID, true, false)
	require.NoError(t, err)
	assert.Empty(t, fetched.Bookings)
}

func TestBookingConflictRejectedByServer(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	registerAndLogin(t, s.client, "owner", "owner@stud.noroff.no", true)
	venue, err := s.client.CreateVenue(ctx, api.VenueRequest{
		Name: "Lodge", Description: "x", Price: 50, MaxGuests: 6,
	})
	require.NoError(t, err)

	guestClient, _ := s.newClient(t)
	registerAndLogin(t, guestClient, "guest", "guest@stud.noroff.no", false)

	_, err = guestClient.CreateBooking(ctx, api.BookingRequest{
		DateFrom: time.Date(2027, 7, 10, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2027, 7, 15, 0, 0, 0, 0, time.UTC),
		Guests:   2, VenueID: venue.ID,
	})
	require.NoError(t, err)

	// a second guest picks endpoints that avoid booked days but span the
	// booking; the client-side guard catches it, and so does the server
	otherClient, _ := s.newClient(t)
	registerAndLogin(t, otherClient, "other", "other@stud.noroff.no", false)

	from := time.Date(2027, 7, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2027, 7, 18, 0, 0, 0, 0, time.UTC)

	fetched, err := otherClient.GetVenue(ctx, venue.ID, true, false)
	require.NoError(t, err)
	assert.True(t, availability.Overlaps(from, to, api.BookedRanges(fetched.Bookings)))

	_, err = otherClient.CreateBooking(ctx, api.BookingRequest{
		DateFrom: from, DateTo: to, Guests: 1, VenueID: venue.ID,
	})
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)
}

func TestVenueListingSearchAndPagination(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	registerAndLogin(t, s.client, "owner", "owner@stud.noroff.no", true)
	names := []string{"Alpha House", "Beach House", "Beach Hut", "Cabin"}
	for i, name := range names {
		_, err := s.client.CreateVenue(ctx, api.VenueRequest{
			Name: name, Description: "d", Price: float64(50 + i*10), MaxGuests: 2,
		})
		require.NoError(t, err)
	}

	venues, meta, err := s.client.ListVenues(ctx, api.ListParams{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, venues, 3)
	require.NotNil(t, meta)
	assert.Equal(t, 4, meta.TotalCount)
	assert.Equal(t, 2, meta.PageCount)
	assert.False(t, meta.IsLastPage)
	require.NotNil(t, meta.NextPage)
	assert.Equal(t, 2, *meta.NextPage)

	// search hits the dedicated endpoint
	found, _, err := s.client.ListVenues(ctx, api.ListParams{Query: "Beach"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// price-low preset sorts ascending
	params := api.ListParams{Limit: 10}
	params.ApplyPreset(api.SortPriceLow)
	sorted, _, err := s.client.ListVenues(ctx, params)
	require.NoError(t, err)
	require.Len(t, sorted, 4)
	assert.Equal(t, "Alpha House", sorted[0].Name)
	assert.Equal(t, "Cabin", sorted[3].Name)
}

func TestProfileUpdateMirrorsIntoSession(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	registerAndLogin(t, s.client, "renate", "renate@stud.noroff.no", false)

	var notified int
	s.store.Subscribe(func() { notified++ })

	vm := true
	bio := "now hosting"
	profile, err := s.client.UpdateProfile(ctx, "renate", api.ProfileUpdate{
		Bio: &bio, VenueManager: &vm,
	})
	require.NoError(t, err)
	assert.True(t, profile.VenueManager)

	sess := s.store.Get()
	require.NotNil(t, sess)
	assert.True(t, sess.Profile.VenueManager)
	assert.Equal(t, "now hosting", sess.Profile.Bio)
	assert.Equal(t, "renate", sess.Profile.Name, "unpatched fields preserved")
	assert.Equal(t, 1, notified, "one store mutation, one notification")

	// the remote profile agrees, with counts
	got, err := s.client.GetProfile(ctx, "renate", false, false)
	require.NoError(t, err)
	assert.True(t, got.VenueManager)
	require.NotNil(t, got.Count)
	assert.Equal(t, 0, got.Count.Bookings)
}

func TestStaleTokenYieldsUnauthorized(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	registerAndLogin(t, s.client, "renate", "renate@stud.noroff.no", false)

	// simulate a revoked/garbage token without touching the store API's
	// callers: overwrite through the store, the sole writer
	require.NoError(t, s.store.Save("not-a-real-token", s.store.Get().Profile))

	_, err := s.client.ListBookings(ctx, false, false)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsUnauthorized())

	// the view reacts by clearing the session
	require.NoError(t, s.store.Clear())
	assert.Nil(t, s.store.Get())
}

func TestBookingExportRoundTrip(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	registerAndLogin(t, s.client, "owner", "owner@stud.noroff.no", true)
	venue, err := s.client.CreateVenue(ctx, api.VenueRequest{
		Name: "Fjord Lodge", Description: "x", Price: 200, MaxGuests: 6,
		Location: api.Location{City: "Geiranger", Country: "Norway"},
	})
	require.NoError(t, err)

	guestClient, guestStore := s.newClient(t)
	registerAndLogin(t, guestClient, "guest", "guest@stud.noroff.no", false)

	_, err = guestClient.CreateBooking(ctx, api.BookingRequest{
		DateFrom: time.Date(2027, 8, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2027, 8, 5, 0, 0, 0, 0, time.UTC),
		Guests:   3, VenueID: venue.ID,
	})
	require.NoError(t, err)

	profile, err := guestClient.GetProfile(ctx, guestStore.Get().Profile.Name, false, true)
	require.NoError(t, err)
	require.Len(t, profile.Bookings, 1)
	require.NotNil(t, profile.Bookings[0].Venue, "_bookings expansion includes the venue")

	var buf bytes.Buffer
	require.NoError(t, ical.WriteBookings(&buf, profile.Bookings))
	assert.Contains(t, buf.String(), "Fjord Lodge (3 guests)")
	assert.Contains(t, buf.String(), "Geiranger")
}

func TestManagerOnlyVenueMutation(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	registerAndLogin(t, s.client, "guest", "guest@stud.noroff.no", false)

	_, err := s.client.CreateVenue(ctx, api.VenueRequest{
		Name: "Nope", Description: "x", Price: 10, MaxGuests: 1,
	})
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
}

func TestVenueDeleteCascadesBookings(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	registerAndLogin(t, s.client, "owner", "owner@stud.noroff.no", true)
	venue, err := s.client.CreateVenue(ctx, api.VenueRequest{
		Name: "Short Lived", Description: "x", Price: 10, MaxGuests: 2,
	})
	require.NoError(t, err)

	guestClient, _ := s.newClient(t)
	registerAndLogin(t, guestClient, "guest", "guest@stud.noroff.no", false)
	_, err = guestClient.CreateBooking(ctx, api.BookingRequest{
		DateFrom: time.Date(2027, 9, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2027, 9, 3, 0, 0, 0, 0, time.UTC),
		Guests:   1, VenueID: venue.ID,
	})
	require.NoError(t, err)

	require.NoError(t, s.client.DeleteVenue(ctx, venue.ID))

	profile, err := guestClient.GetProfile(ctx, "guest", false, true)
	require.NoError(t, err)
	assert.Empty(t, profile.Bookings, "bookings die with their venue")
}
