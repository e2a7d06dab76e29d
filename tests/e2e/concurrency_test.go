//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	stdhttptest "net/http/httptest"

	resdto "amenity-booking/internal/handler/dto/response"
	"amenity-booking/internal/usecase/notify"
	"amenity-booking/tests/common/dbtest"
	"amenity-booking/tests/common/httptest"

	"golang.org/x/sync/errgroup"
)

// serveAll releases every request at once and waits for all responses.
func (s *BookingFlowSuite) serveAll(reqs []*http.Request) []*stdhttptest.ResponseRecorder {
	out := make([]*stdhttptest.ResponseRecorder, len(reqs))
	start := make(chan struct{})
	var g errgroup.Group
	for i, req := range reqs {
		out[i] = stdhttptest.NewRecorder()
		g.Go(func() error {
			<-start
			s.Router.ServeHTTP(out[i], req)
			return nil
		})
	}
	close(start)
	s.Require().NoError(g.Wait())
	return out
}

func (s *BookingFlowSuite) request(method, path string, body any, token string) *http.Request {
	req, err := httptest.NewRequest(method, path, body, token)
	s.Require().NoError(err)
	return req
}

func statusCounts(ws []*stdhttptest.ResponseRecorder) map[int]int {
	counts := map[int]int{}
	for _, w := range ws {
		counts[w.Code]++
	}
	return counts
}

func (s *BookingFlowSuite) holdingBookings() int {
	var n int
	err := s.DB.QueryRow(context.Background(),
		"SELECT count(*) FROM bookings WHERE status IN ('confirmed', 'pending_confirmation')").Scan(&n)
	s.Require().NoError(err)
	return n
}

func (s *BookingFlowSuite) TestConcurrentCreateHoldsOneSlot() {
	const requesters = 8
	amenityID := s.createAmenity()

	reqs := make([]*http.Request, requesters)
	for i := range reqs {
		token, _ := s.token(fmt.Sprintf("resident%d@example.com", i), false)
		reqs[i] = s.request(http.MethodPost, "/api/bookings", map[string]any{
			"amenityId": amenityID,
			"startTime": slotStart,
			"endTime":   slotEnd,
		}, token)
	}

	ws := s.serveAll(reqs)

	counts := statusCounts(ws)
	s.Equal(1, counts[http.StatusCreated], "exactly one requester gets the slot: %v", counts)
	s.Equal(requesters-1, counts[http.StatusAccepted], "everyone else is queued: %v", counts)

	positions := map[int]bool{}
	for _, w := range ws {
		if w.Code != http.StatusAccepted {
			continue
		}
		var res resdto.CreateBookingResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
		s.Require().NotNil(res.Waitlist)
		positions[res.Waitlist.Position] = true
	}
	for p := 1; p < requesters; p++ {
		s.True(positions[p], "queue position %d assigned once", p)
	}

	n, err := dbtest.CountRows(context.Background(), s.DB, "bookings")
	s.Require().NoError(err)
	s.Equal(1, n)
	n, err = dbtest.CountRows(context.Background(), s.DB, "waitlist_entries")
	s.Require().NoError(err)
	s.Equal(requesters-1, n)
}

func (s *BookingFlowSuite) TestConcurrentCancelPromotesOnce() {
	amenityID := s.createAmenity()
	aliceToken, _ := s.token("alice@example.com", false)
	bobToken, bobID := s.token("bob@example.com", false)

	alice, code := s.book(aliceToken, amenityID)
	s.Require().Equal(http.StatusCreated, code)
	_, code = s.book(bobToken, amenityID)
	s.Require().Equal(http.StatusAccepted, code)

	path := "/api/bookings/cancel/" + alice.Booking.ID.String()
	reqs := make([]*http.Request, 4)
	for i := range reqs {
		reqs[i] = s.request(http.MethodPost, path, nil, aliceToken)
	}

	counts := statusCounts(s.serveAll(reqs))
	s.Equal(1, counts[http.StatusOK], "one cancellation wins: %v", counts)
	s.Equal(len(reqs)-1, counts[http.StatusConflict], "the rest see it already cancelled: %v", counts)

	s.Len(s.Sink.ByTemplate(notify.TemplateBookingCancellation), 1)
	promoted := s.Sink.ByTemplate(notify.TemplateWaitlistPromoted)
	s.Require().Len(promoted, 1)
	s.Equal(bobID, promoted[0].To.UserID)
	s.Equal(1, s.holdingBookings())
}

func (s *BookingFlowSuite) TestConfirmRacesDecline() {
	amenityID := s.createAmenity()
	aliceToken, _ := s.token("alice@example.com", false)
	bobToken, _ := s.token("bob@example.com", false)
	carolToken, carolID := s.token("carol@example.com", false)

	alice, _ := s.book(aliceToken, amenityID)
	_, code := s.book(bobToken, amenityID)
	s.Require().Equal(http.StatusAccepted, code)
	_, code = s.book(carolToken, amenityID)
	s.Require().Equal(http.StatusAccepted, code)

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings/cancel/"+alice.Booking.ID.String(), nil, aliceToken)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	bobPending := s.myBookings(bobToken)
	s.Require().Len(bobPending, 1)
	offerPath := "/api/bookings/" + bobPending[0].ID.String()

	ws := s.serveAll([]*http.Request{
		s.request(http.MethodPost, offerPath+"/confirm", nil, bobToken),
		s.request(http.MethodPost, offerPath+"/decline", nil, bobToken),
	})
	confirm, decline := ws[0], ws[1]

	counts := statusCounts(ws)
	s.Equal(1, counts[http.StatusOK], "only one answer to the offer stands: %v", counts)
	s.Equal(1, counts[http.StatusConflict], "the other finds it resolved: %v", counts)
	s.Equal(1, s.holdingBookings(), "the slot has exactly one holder")

	bobStatus := s.myBookings(bobToken)[0].Status
	carolBookings := s.myBookings(carolToken)
	switch {
	case confirm.Code == http.StatusOK:
		s.Equal("confirmed", bobStatus)
		s.Empty(carolBookings, "a confirmed offer is never passed on")
		s.Len(s.Sink.ByTemplate(notify.TemplateWaitlistPromoted), 1)
		s.Len(s.Sink.ByTemplate(notify.TemplateBookingConfirmation), 2)
	case decline.Code == http.StatusOK:
		s.Equal("cancelled", bobStatus)
		s.Require().Len(carolBookings, 1)
		s.Equal(carolID, carolBookings[0].UserID)
		s.Equal("pending_confirmation", carolBookings[0].Status)
		s.Len(s.Sink.ByTemplate(notify.TemplateWaitlistPromoted), 2)
		s.Len(s.Sink.ByTemplate(notify.TemplateBookingConfirmation), 1, "only alice ever got an access code")
	}
}
