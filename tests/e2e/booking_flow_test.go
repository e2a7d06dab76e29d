//go:build e2e

package e2e

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	resdto "amenity-booking/internal/handler/dto/response"
	"amenity-booking/internal/usecase/notify"
	"amenity-booking/tests/common/authtest"
	"amenity-booking/tests/common/builder"
	"amenity-booking/tests/common/dbtest"
	"amenity-booking/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BookingFlowSuite struct {
	SharedSuite
	jwt       *authtest.JWTHelper
	community uuid.UUID
}

func TestBookingFlowSuite(t *testing.T) {
	suite.Run(t, new(BookingFlowSuite))
}

func (s *BookingFlowSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
	s.community = uuid.New()
}

var (
	slotStart = time.Date(2030, 1, 8, 10, 0, 0, 0, time.UTC)
	slotEnd   = slotStart.Add(2 * time.Hour)
)

func (s *BookingFlowSuite) token(email string, admin bool) (string, uuid.UUID) {
	b := builder.NewActorBuilder().InCommunity(s.community).WithEmail(email)
	if admin {
		b = b.Admin()
	}
	actor := b.Build()
	return s.jwt.GenerateToken(s.T(), actor), actor.UserID
}

func (s *BookingFlowSuite) createAmenity() uuid.UUID {
	adminToken, _ := s.token("admin@example.com", true)
	req := builder.NewAmenityBuilder().With(func(b *builder.AmenityBuilder) { b.CommunityID = s.community }).BuildCreateRequestDTO()

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/amenities", req, adminToken)
	var res resdto.AmenityResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
	s.Require().NotEqual(uuid.Nil, res.ID)
	s.Equal(res.ID.String(), httptest.AssertLocation(s.T(), w, "/api/amenities/"))
	return res.ID
}

func (s *BookingFlowSuite) book(token string, amenityID uuid.UUID) (*resdto.CreateBookingResponse, int) {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", map[string]any{
		"amenityId": amenityID,
		"startTime": slotStart,
		"endTime":   slotEnd,
	}, token)
	var res resdto.CreateBookingResponse
	if w.Code < 300 {
		httptest.AssertSuccessResponse(s.T(), w, w.Code, &res)
	}
	return &res, w.Code
}

func (s *BookingFlowSuite) myBookings(token string) []resdto.BookingResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings", nil, token)
	var res []resdto.BookingResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
	return res
}

func (s *BookingFlowSuite) TestCancelPromotesWaitlist() {
	amenityID := s.createAmenity()
	aliceToken, _ := s.token("alice@example.com", false)
	bobToken, bobID := s.token("bob@example.com", false)

	alice, code := s.book(aliceToken, amenityID)
	s.Require().Equal(http.StatusCreated, code)
	s.Equal("confirmed", alice.Status)

	bob, code := s.book(bobToken, amenityID)
	s.Require().Equal(http.StatusAccepted, code)
	s.Require().NotNil(bob.Waitlist)
	s.Equal(1, bob.Waitlist.Position)

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
		"/api/amenities/"+amenityID.String()+"/slots?date=2030-01-08", nil, bobToken)
	var slots resdto.SlotsResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &slots)
	for _, sl := range slots.Slots {
		if sl.StartTime.Equal(slotStart) {
			s.False(sl.Available)
			s.Equal("slot_full", sl.Kind)
			s.Equal(1, sl.WaitlistLength)
		}
	}

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
		"/api/bookings/cancel/"+alice.Booking.ID.String(), map[string]any{"reason": "rain"}, aliceToken)
	var cancelled resdto.CancelBookingResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &cancelled)
	s.True(cancelled.WaitlistPromoted)
	s.Require().NotNil(cancelled.PromotedUser)
	s.Equal(bobID, cancelled.PromotedUser.UserID)

	promoted := s.Sink.ByTemplate(notify.TemplateWaitlistPromoted)
	s.Require().Len(promoted, 1)
	s.Equal("bob@example.com", promoted[0].To.Email)

	pending := s.myBookings(bobToken)
	s.Require().Len(pending, 1)
	s.Equal("pending_confirmation", pending[0].Status)
	s.NotNil(pending[0].OfferDeadline)
	s.Nil(pending[0].AccessCode)

	// the emailed link is the only credential needed
	link, err := url.Parse(promoted[0].Data["confirmUrl"].(string))
	s.Require().NoError(err)
	w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, link.RequestURI(), nil, "")
	var confirmed resdto.OfferResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &confirmed)
	s.Require().NotNil(confirmed.Booking)
	s.Equal("confirmed", confirmed.Booking.Status)
	s.NotNil(confirmed.Booking.AccessCode)

	ctx := context.Background()
	entries, err := dbtest.CountRows(ctx, s.DB, "waitlist_entries")
	s.Require().NoError(err)
	s.Zero(entries)
	s.Len(s.Sink.ByTemplate(notify.TemplateBookingConfirmation), 2, "alice on booking and bob on confirmation")
}

func (s *BookingFlowSuite) TestDeclinePassesSlotOn() {
	amenityID := s.createAmenity()
	aliceToken, _ := s.token("alice@example.com", false)
	bobToken, _ := s.token("bob@example.com", false)
	carolToken, carolID := s.token("carol@example.com", false)

	alice, _ := s.book(aliceToken, amenityID)
	_, code := s.book(bobToken, amenityID)
	s.Require().Equal(http.StatusAccepted, code)
	carol, code := s.book(carolToken, amenityID)
	s.Require().Equal(http.StatusAccepted, code)
	s.Equal(2, carol.Waitlist.Position)

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings/cancel/"+alice.Booking.ID.String(), nil, aliceToken)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	bobPending := s.myBookings(bobToken)
	s.Require().Len(bobPending, 1)
	w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings/"+bobPending[0].ID.String()+"/decline", nil, bobToken)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	s.Equal("cancelled", s.myBookings(bobToken)[0].Status)
	carolPending := s.myBookings(carolToken)
	s.Require().Len(carolPending, 1)
	s.Equal(carolID, carolPending[0].UserID)
	s.Equal("pending_confirmation", carolPending[0].Status)

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings/"+carolPending[0].ID.String()+"/confirm", nil, bobToken)
	s.Equal(http.StatusForbidden, w.Code, "only the offeree can confirm")
}

func (s *BookingFlowSuite) TestDoubleBookingIsRefused() {
	amenityID := s.createAmenity()
	aliceToken, _ := s.token("alice@example.com", false)

	_, code := s.book(aliceToken, amenityID)
	s.Require().Equal(http.StatusCreated, code)
	_, code = s.book(aliceToken, amenityID)
	s.Equal(http.StatusConflict, code)

	n, err := dbtest.CountRows(context.Background(), s.DB, "bookings")
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *BookingFlowSuite) TestSweepOnQuietStore() {
	report, err := s.Sweeper.Run(context.Background())
	s.Require().NoError(err)
	s.Zero(report.ExpiredOffers)
	s.Zero(report.Promotions)
}
