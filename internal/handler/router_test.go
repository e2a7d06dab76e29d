//go:build unit

package handler_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"amenity-booking/internal/domain/amenity"
	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/domain/user"
	"amenity-booking/internal/domain/waitlist"
	"amenity-booking/internal/handler"
	"amenity-booking/internal/handler/api"
	resdto "amenity-booking/internal/handler/dto/response"
	"amenity-booking/internal/handler/middleware"
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/pkg/config"
	"amenity-booking/internal/pkg/jwt"
	"amenity-booking/internal/pkg/metrics"
	"amenity-booking/internal/usecase"
	"amenity-booking/internal/usecase/commands"
	"amenity-booking/internal/usecase/promotion"
	"amenity-booking/internal/usecase/queries"
	"amenity-booking/tests/common/authtest"
	"amenity-booking/tests/common/builder"
	"amenity-booking/tests/common/httptest"
	"amenity-booking/tests/common/testutil"
	commandsmock "amenity-booking/tests/mock/commands"
	queriesmock "amenity-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type routerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	bookingCmds *commandsmock.MockBookingCommands
	amenityCmds *commandsmock.MockAmenityCommands
	bookingQ    *queriesmock.MockBookingQueries
	amenityQ    *queriesmock.MockAmenityQueries
	engine      *gin.Engine
	jwt         *authtest.JWTHelper
	now         time.Time
	resident    user.Actor
	admin       user.Actor
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(routerSuite))
}

func (s *routerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()
	cfg.RateLimit = config.RateLimitConfig{ConfirmLinkPerMinute: 1, ConfirmLinkBurst: 2}

	s.ctrl = gomock.NewController(s.T())
	s.bookingCmds = commandsmock.NewMockBookingCommands(s.ctrl)
	s.amenityCmds = commandsmock.NewMockAmenityCommands(s.ctrl)
	s.bookingQ = queriesmock.NewMockBookingQueries(s.ctrl)
	s.amenityQ = queriesmock.NewMockAmenityQueries(s.ctrl)
	s.jwt = authtest.NewJWTHelper(cfg.JWT)
	s.now = time.Date(2030, 1, 5, 9, 0, 0, 0, time.UTC)

	community := uuid.New()
	s.resident = builder.NewActorBuilder().InCommunity(community).Build()
	s.admin = builder.NewActorBuilder().Admin().InCommunity(community).Build()

	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.LinkSecret, time.Hour)
	clk := clock.NewMockClock(s.now)
	requestLog := middleware.NewLogger(cfg.Log)
	reg := prometheus.NewRegistry()

	s.engine = gin.New()
	handler.NewRouter(handler.RouterParams{
		Engine:       s.engine,
		Config:       cfg,
		Logger:       requestLog.GetSlogLogger(),
		RequestLog:   requestLog,
		Metrics:      metrics.New(reg),
		Gatherer:     reg,
		Bookings:     api.NewBookingHandler(s.bookingCmds, s.bookingQ, clk),
		Amenities:    api.NewAmenityHandler(s.amenityCmds, s.amenityQ, s.bookingQ),
		Waitlist:     api.NewWaitlistHandler(s.bookingCmds, s.bookingQ),
		Confirmation: api.NewConfirmationHandler(s.bookingCmds, jwtService, clk),
		Auth:         middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwtService)),
		RateLimiter:  middleware.NewIPRateLimiter(cfg.RateLimit),
	})
}

func (s *routerSuite) token(actor user.Actor) string {
	return s.jwt.GenerateToken(s.T(), actor)
}

func (s *routerSuite) TestHealth() {
	w := httptest.PerformRequest(s.T(), s.engine, http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *routerSuite) TestAuthentication() {
	s.Run("missing token is 401", func() {
		w := httptest.PerformRequest(s.T(), s.engine, http.MethodGet, "/api/bookings", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Access token required")
	})

	s.Run("expired token is 401", func() {
		token := s.jwt.CreateExpiredToken(s.T(), s.resident)
		w := httptest.PerformRequest(s.T(), s.engine, http.MethodGet, "/api/bookings", nil, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("admin routes reject residents", func() {
		w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, "/api/amenities",
			builder.NewAmenityBuilder().BuildCreateRequestDTO(), s.token(s.resident))
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Insufficient permissions")
	})
}

func (s *routerSuite) TestCreateBooking() {
	b := builder.NewBookingBuilder()
	req := b.BuildCreateRequestDTO()
	confirmed := b.MustBuildConfirmed()

	s.Run("confirmed booking returns 201 with Location", func() {
		s.bookingCmds.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), req.ToInput()).
			DoAndReturn(func(_ any, actor user.Actor, _ commands.CreateBookingInput) (*commands.CreateBookingResult, error) {
				s.Equal(s.resident.UserID, actor.UserID)
				return &commands.CreateBookingResult{Status: commands.CreateConfirmed, Booking: confirmed}, nil
			})

		w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, "/api/bookings", req, s.token(s.resident))

		var res resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
		httptest.AssertHeaders(s.T(), w, map[string]string{"Location": "/api/bookings/" + confirmed.ID().String()})
		s.Equal("confirmed", res.Status)
		s.Require().NotNil(res.Booking)
		s.Equal(confirmed.ID(), res.Booking.ID)
		s.Nil(res.Waitlist)
	})

	s.Run("taken slot returns 202 with queue position", func() {
		entry := waitlist.NewEntry(b.AmenityID, slot.MustWindow(b.Start, b.End), s.resident.UserID, s.resident.Email, s.now)
		s.bookingCmds.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&commands.CreateBookingResult{Status: commands.CreateWaitlisted, Entry: entry, Position: 3}, nil)

		w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, "/api/bookings", req, s.token(s.resident))

		var res resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusAccepted, &res)
		httptest.AssertHeaders(s.T(), w, map[string]string{"Location": ""})
		s.Equal("waitlisted", res.Status)
		s.Require().NotNil(res.Waitlist)
		s.Equal(entry.ID(), res.Waitlist.EntryID)
		s.Equal(3, res.Waitlist.Position)
	})

	s.Run("availability rejection carries its kind", func() {
		s.bookingCmds.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &commands.UnavailableError{Kind: amenity.RejectionBlackout, Reason: "amenity is closed on 2030-01-08"})

		w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, "/api/bookings", req, s.token(s.resident))

		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "closed on 2030-01-08")
		httptest.AssertRejection(s.T(), w, "blackout")
	})

	errorCases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"slot in the past", commands.ErrSlotInPast, http.StatusBadRequest, "already started"},
		{"duplicate booking", commands.ErrDuplicateBooking, http.StatusConflict, "already hold"},
		{"other community", commands.ErrForbidden, http.StatusForbidden, "not allowed"},
		{"unknown amenity", commands.ErrAmenityNotFound, http.StatusNotFound, "amenity not found"},
		{"internal error", errors.New("pool exhausted"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.bookingCmds.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)
			w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, "/api/bookings", req, s.token(s.resident))
			httptest.AssertErrorResponse(s.T(), w, tc.status, tc.msg)
		})
	}

	invalid := []struct {
		name string
		body map[string]any
	}{
		{"missing amenityId", testutil.DtoMap(s.T(), req, testutil.Field("amenityId", nil))},
		{"missing endTime", testutil.DtoMap(s.T(), req, testutil.Field("endTime", nil))},
		{"malformed time", testutil.DtoMap(s.T(), req, testutil.Field("startTime", "tomorrow"))},
	}
	for _, tc := range invalid {
		s.Run(tc.name, func() {
			w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, "/api/bookings", tc.body, s.token(s.resident))
			httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request")
		})
	}
}

func (s *routerSuite) TestCancelBooking() {
	b := builder.NewBookingBuilder().MustBuildConfirmed()
	path := "/api/bookings/cancel/" + b.ID().String()

	s.Run("reason is trimmed and passed through", func() {
		s.bookingCmds.EXPECT().
			CancelBooking(gomock.Any(), gomock.Any(), b.ID(), gomock.Any()).
			DoAndReturn(func(_ any, _ user.Actor, _ uuid.UUID, reason *string) (*commands.CancelBookingResult, error) {
				s.Require().NotNil(reason)
				s.Equal("rain", *reason)
				return &commands.CancelBookingResult{Booking: b, WaitlistPromoted: true}, nil
			})

		w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, path, map[string]any{"reason": "  rain "}, s.token(s.resident))

		var res resdto.CancelBookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.True(res.Success)
		s.True(res.WaitlistPromoted)
	})

	s.Run("body is optional", func() {
		s.bookingCmds.EXPECT().CancelBooking(gomock.Any(), gomock.Any(), b.ID(), (*string)(nil)).
			Return(&commands.CancelBookingResult{Booking: b}, nil)
		w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, path, nil, s.token(s.resident))
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("blank reason is dropped", func() {
		s.bookingCmds.EXPECT().CancelBooking(gomock.Any(), gomock.Any(), b.ID(), (*string)(nil)).
			Return(&commands.CancelBookingResult{Booking: b}, nil)
		w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, path, map[string]any{"reason": "   "}, s.token(s.resident))
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("invalid id", func() {
		w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, "/api/bookings/cancel/nope", nil, s.token(s.resident))
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid bookingId")
	})
}

func (s *routerSuite) TestOfferEndpoints() {
	b := builder.NewBookingBuilder().MustBuildConfirmed()

	s.Run("confirm", func() {
		s.bookingCmds.EXPECT().ConfirmOffer(gomock.Any(), s.resident.UserID, b.ID()).
			Return(&commands.OfferResult{Booking: b}, nil)
		w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, "/api/bookings/"+b.ID().String()+"/confirm", nil, s.token(s.resident))

		var res resdto.OfferResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Require().NotNil(res.Booking)
		s.Equal(b.ID(), res.Booking.ID)
	})

	s.Run("expired offer returns 410 with warnings", func() {
		s.bookingCmds.EXPECT().DeclineOffer(gomock.Any(), s.resident.UserID, b.ID()).
			Return(&commands.OfferResult{Warnings: []string{"notify next: smtp down"}}, waitlist.ErrOfferExpired)
		w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, "/api/bookings/"+b.ID().String()+"/decline", nil, s.token(s.resident))

		httptest.AssertErrorResponse(s.T(), w, http.StatusGone, "offer expired")
		s.Contains(w.Body.String(), "smtp down")
	})

	s.Run("someone else's offer", func() {
		s.bookingCmds.EXPECT().ConfirmOffer(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, promotion.ErrNotOfferee)
		w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, "/api/bookings/"+b.ID().String()+"/confirm", nil, s.token(s.resident))
		s.Equal(http.StatusForbidden, w.Code)
	})
}

func (s *routerSuite) TestConfirmationLink() {
	bookingID := uuid.New()
	deadline := s.now.Add(48 * time.Hour)
	token := s.jwt.GenerateLinkToken(s.T(), bookingID, s.resident.UserID, deadline)

	s.Run("link token identifies the offeree", func() {
		s.bookingCmds.EXPECT().ConfirmOffer(gomock.Any(), s.resident.UserID, bookingID).
			Return(&commands.OfferResult{}, nil)
		w := httptest.PerformRequest(s.T(), s.engine, http.MethodGet,
			"/bookings/confirm/"+bookingID.String()+"?action=confirm&token="+token, nil, "")
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("token for another booking", func() {
		w := httptest.PerformRequest(s.T(), s.engine, http.MethodGet,
			"/bookings/confirm/"+uuid.NewString()+"?action=decline&token="+token, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid confirmation link")
	})

	s.Run("third link request within a minute is throttled", func() {
		w := httptest.PerformRequest(s.T(), s.engine, http.MethodGet,
			"/bookings/confirm/"+bookingID.String()+"?action=confirm&token="+token, nil, "")
		s.Equal(http.StatusTooManyRequests, w.Code)
		httptest.AssertHeaders(s.T(), w, map[string]string{"Retry-After": "60"})
	})
}

func (s *routerSuite) TestConfirmationLinkValidation() {
	bookingID := uuid.New()

	w := httptest.PerformRequest(s.T(), s.engine, http.MethodGet,
		"/bookings/confirm/"+bookingID.String()+"?action=maybe", nil, "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "action must be confirm or decline")

	w = httptest.PerformRequest(s.T(), s.engine, http.MethodGet,
		"/bookings/confirm/"+bookingID.String()+"?action=confirm", nil, "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Link token required")
}

func (s *routerSuite) TestSlots() {
	amenityID := uuid.New()
	start := time.Date(2030, 1, 8, 10, 0, 0, 0, time.UTC)

	s.Run("date is required", func() {
		w := httptest.PerformRequest(s.T(), s.engine, http.MethodGet, "/api/amenities/"+amenityID.String()+"/slots", nil, s.token(s.resident))
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "date is required")
	})

	s.Run("slot grid", func() {
		s.amenityQ.EXPECT().ListSlots(gomock.Any(), amenityID, "2030-01-08").Return(&queries.SlotsView{
			AmenityID: amenityID,
			Date:      "2030-01-08",
			Slots: []queries.SlotView{
				{StartTime: start, EndTime: start.Add(2 * time.Hour), Available: false, Kind: string(amenity.RejectionSlotFull), WaitlistLength: 2},
				{StartTime: start.Add(2 * time.Hour), EndTime: start.Add(4 * time.Hour), Available: true},
			},
		}, nil)

		w := httptest.PerformRequest(s.T(), s.engine, http.MethodGet, "/api/amenities/"+amenityID.String()+"/slots?date=2030-01-08", nil, s.token(s.resident))

		var res resdto.SlotsResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Require().Len(res.Slots, 2)
		s.Equal("slot_full", res.Slots[0].Kind)
		s.Equal(2, res.Slots[0].WaitlistLength)
		s.True(res.Slots[1].Available)
	})
}

func (s *routerSuite) TestCreateAmenity() {
	req := builder.NewAmenityBuilder().BuildCreateRequestDTO()
	a := builder.NewAmenityBuilder().MustBuildDomain()

	s.amenityCmds.EXPECT().CreateAmenity(gomock.Any(), gomock.Any(), req.ToInput()).Return(a, nil)
	w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, "/api/amenities", req, s.token(s.admin))
	var res resdto.AmenityResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
	httptest.AssertHeaders(s.T(), w, map[string]string{"Location": "/api/amenities/" + a.ID().String()})
	s.Equal(a.ID(), res.ID)

	invalid := []struct {
		name string
		body map[string]any
	}{
		{"missing name", testutil.DtoMap(s.T(), req, testutil.Field("name", nil))},
		{"zero capacity", testutil.DtoMap(s.T(), req, testutil.Field("maxPeople", 0))},
		{"slot too short", testutil.DtoMap(s.T(), req, testutil.Field("slotDurationMinutes", 15))},
	}
	for _, tc := range invalid {
		s.Run(tc.name, func() {
			w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, "/api/amenities", tc.body, s.token(s.admin))
			httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request")
		})
	}
}

func (s *routerSuite) TestListAmenitiesDefaultsToCommunity() {
	s.amenityQ.EXPECT().ListAmenities(gomock.Any(), &s.resident.CommunityID).Return([]*queries.AmenityView{}, nil)
	w := httptest.PerformRequest(s.T(), s.engine, http.MethodGet, "/api/amenities", nil, s.token(s.resident))
	s.Equal(http.StatusOK, w.Code)
}

func (s *routerSuite) TestLeaveWaitlist() {
	entryID := uuid.New()
	s.bookingCmds.EXPECT().LeaveWaitlist(gomock.Any(), gomock.Any(), entryID).Return(nil)
	w := httptest.PerformRequest(s.T(), s.engine, http.MethodDelete, "/api/waitlist/"+entryID.String(), nil, s.token(s.resident))
	s.Equal(http.StatusNoContent, w.Code)

	s.bookingCmds.EXPECT().LeaveWaitlist(gomock.Any(), gomock.Any(), entryID).Return(commands.ErrWaitlistEntryNotFound)
	w = httptest.PerformRequest(s.T(), s.engine, http.MethodDelete, "/api/waitlist/"+entryID.String(), nil, s.token(s.resident))
	httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "waitlist entry not found")
}

func (s *routerSuite) TestTransitions() {
	b := builder.NewBookingBuilder().MustBuildConfirmed()
	s.bookingCmds.EXPECT().CheckIn(gomock.Any(), gomock.Any(), b.ID()).Return(nil, booking.ErrInvalidTransition)
	w := httptest.PerformRequest(s.T(), s.engine, http.MethodPost, "/api/bookings/"+b.ID().String()+"/check-in", nil, s.token(s.resident))
	s.Equal(http.StatusConflict, w.Code)
}

func TestRateLimiter_Allow(t *testing.T) {
	l := middleware.NewIPRateLimiter(config.RateLimitConfig{ConfirmLinkPerMinute: 60, ConfirmLinkBurst: 2})

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"), "burst exhausted")
	require.True(t, l.Allow("10.0.0.2"), "buckets are per IP")
}
