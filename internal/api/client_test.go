package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/rental"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := NewClient(server.URL+"/api", WithRequestID(func() string { return "req-1" }))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:9000/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("expected error for missing host")
	}
}

func TestClient_ListMoviesEncodesOnlySetFilters(t *testing.T) {
	var gotQuery url.Values
	var gotPath, gotRequestID string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode([]catalog.Movie{{ID: 1, Title: "A"}})
	}))

	movies, err := c.ListMovies(testContext(t), catalog.Filter{Category: "Drama", MinRating: 4})
	if err != nil {
		t.Fatalf("ListMovies returned error: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "A" {
		t.Fatalf("movies = %#v", movies)
	}
	if gotPath != "/api/movies" {
		t.Fatalf("path = %q, want /api/movies", gotPath)
	}
	if gotQuery.Get("category") != "Drama" || gotQuery.Get("rating") != "4" {
		t.Fatalf("query = %v", gotQuery)
	}
	if gotQuery.Has("search") || gotQuery.Has("year") {
		t.Fatalf("empty filters leaked into query: %v", gotQuery)
	}
	if gotRequestID != "req-1" {
		t.Fatalf("X-Request-ID = %q, want req-1", gotRequestID)
	}
}

func TestClient_ErrorMessages(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/movies/1":
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"timestamp":"2024-01-01","message":"Movie not found with id: 1","details":"uri=/movies/1"}`)
		case "/api/movies/2":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `<html>oops</html>`)
		case "/api/auth/login":
			w.WriteHeader(http.StatusUnauthorized)
		case "/api/admin/movies":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"Validation failed","code":"VALIDATION","errors":{"title":"must not be blank"}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	ctx := testContext(t)

	_, err := c.GetMovie(ctx, 1)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("GetMovie error = %v, want *Error", err)
	}
	if apiErr.Message != "Movie not found with id: 1" || !apiErr.NotFound() || !IsNotFound(err) {
		t.Fatalf("apiErr = %#v", apiErr)
	}

	_, err = c.GetMovie(ctx, 2)
	if got := Message(err, ""); got != "Failed to fetch movie details" {
		t.Fatalf("fallback message = %q", got)
	}

	_, err = c.Login(ctx, LoginRequest{Email: "a@b.co", Password: "secret"})
	if got := Message(err, ""); got != "Login failed with status: 401" {
		t.Fatalf("login message = %q", got)
	}
	if !errors.As(err, &apiErr) || !apiErr.Unauthorized() {
		t.Fatalf("login error = %#v, want unauthorized", err)
	}

	_, err = c.CreateMovie(ctx, catalog.Movie{})
	if !errors.As(err, &apiErr) {
		t.Fatalf("CreateMovie error = %v", err)
	}
	if apiErr.Code != "VALIDATION" || apiErr.Fields["title"] != "must not be blank" {
		t.Fatalf("apiErr = %#v", apiErr)
	}
	if apiErr.FieldSummary() != "title: must not be blank" {
		t.Fatalf("FieldSummary = %q", apiErr.FieldSummary())
	}

	if got := Message(errors.New("dial tcp: refused"), "Failed to load"); got != "Failed to load" {
		t.Fatalf("non-api message = %q", got)
	}
}

func TestClient_SessionCookieCarriedAndReset(t *testing.T) {
	var mu sync.Mutex
	var sawCookie []bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "abc", Path: "/"})
			_ = json.NewEncoder(w).Encode(User{ID: 9, Email: "admin@example.com", Admin: true})
		case "/api/users/9":
			_, err := r.Cookie("JSESSIONID")
			mu.Lock()
			sawCookie = append(sawCookie, err == nil)
			mu.Unlock()
			_ = json.NewEncoder(w).Encode(User{ID: 9})
		}
	}))
	ctx := testContext(t)

	user, err := c.Login(ctx, LoginRequest{Email: " admin@example.com ", Password: "secret"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !user.Admin || user.ID != 9 {
		t.Fatalf("user = %#v", user)
	}
	if _, err := c.GetUser(ctx, 9); err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if err := c.ResetSession(); err != nil {
		t.Fatalf("ResetSession returned error: %v", err)
	}
	if _, err := c.GetUser(ctx, 9); err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(sawCookie) != 2 || !sawCookie[0] || sawCookie[1] {
		t.Fatalf("cookie presence = %v, want [true false]", sawCookie)
	}
}

func TestClient_RentalEndpointsNormalizeDates(t *testing.T) {
	var createBody map[string]any
	var methods []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/api/rentals":
			_ = json.NewDecoder(r.Body).Decode(&createBody)
			_, _ = io.WriteString(w, `{"id":5,"movieId":3,"rentalCode":"XY7","rentalDate":[2024,3,15,10,30,0],"returnDate":[2024,3,25,10,30],"status":"ORDERED"}`)
		case "/api/rentals/code/XY 7":
			_, _ = io.WriteString(w, `{"id":5,"movieId":3,"status":"ordered"}`)
		case "/api/rentals/5/cancel":
			_, _ = io.WriteString(w, `{"id":5,"movieId":3,"status":"CANCELLED"}`)
		case "/api/admin/rentals/5/take":
			_, _ = io.WriteString(w, `{"id":5,"movieId":3,"status":"TAKEN"}`)
		case "/api/admin/rentals/5/return":
			_, _ = io.WriteString(w, `{"id":5,"movieId":3,"status":"RETURNED"}`)
		case "/api/admin/rentals":
			if r.URL.Query().Get("email") != "a@b.co" || r.URL.Query().Get("status") != "TAKEN" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = io.WriteString(w, `[{"id":5,"movieId":3,"rentalDate":[2024,3,15],"status":"taken"}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	ctx := testContext(t)

	created, err := c.CreateRental(ctx, rental.Request{UserID: 1, MovieID: 3, ReturnDate: "2024-03-25T10:30:00.000Z"})
	if err != nil {
		t.Fatalf("CreateRental returned error: %v", err)
	}
	if created.RentalCode != "XY7" || created.Status != rental.Ordered {
		t.Fatalf("created = %#v", created)
	}
	want := time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)
	if !created.RentalDate.Equal(want) {
		t.Fatalf("rentalDate = %v, want %v", created.RentalDate.Time, want)
	}
	if createBody["returnDate"] != "2024-03-25T10:30:00.000Z" || createBody["userId"] != float64(1) {
		t.Fatalf("create body = %v", createBody)
	}

	byCode, err := c.GetRentalByCode(ctx, " XY 7 ")
	if err != nil {
		t.Fatalf("GetRentalByCode returned error: %v", err)
	}
	if byCode.ID != 5 || byCode.Status != rental.Ordered {
		t.Fatalf("byCode = %#v", byCode)
	}
	if _, err := c.GetRentalByCode(ctx, "  "); err == nil {
		t.Fatalf("expected error for empty code")
	}

	for _, tc := range []struct {
		call func() (rental.Rental, error)
		want rental.Status
	}{
		{func() (rental.Rental, error) { return c.CancelRental(ctx, 5) }, rental.Cancelled},
		{func() (rental.Rental, error) { return c.TakeRental(ctx, 5) }, rental.Taken},
		{func() (rental.Rental, error) { return c.ReturnRental(ctx, 5) }, rental.Returned},
	} {
		got, err := tc.call()
		if err != nil {
			t.Fatalf("transition returned error: %v", err)
		}
		if got.Status != tc.want {
			t.Fatalf("status = %v, want %v", got.Status, tc.want)
		}
	}

	list, err := c.AdminRentals(ctx, AdminRentalQuery{Email: "a@b.co", Status: "taken"})
	if err != nil {
		t.Fatalf("AdminRentals returned error: %v", err)
	}
	if len(list) != 1 || list[0].Status != rental.Taken || !list[0].RentalDate.Valid() {
		t.Fatalf("list = %#v", list)
	}

	wantMethods := []string{"POST /api/rentals", "PATCH /api/rentals/5/cancel", "PATCH /api/admin/rentals/5/take", "PATCH /api/admin/rentals/5/return"}
	for _, m := range wantMethods {
		found := false
		for _, got := range methods {
			if got == m {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing call %q in %v", m, methods)
		}
	}
}

func TestClient_UploadImage(t *testing.T) {
	var gotName, gotType string
	var gotSize int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/images" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotName = header.Filename
		gotType = header.Header.Get("Content-Type")
		gotSize = len(data)
		_, _ = io.WriteString(w, `{"imageId":"img-42"}`)
	}))
	ctx := testContext(t)

	id, err := c.UploadImage(ctx, Upload{Filename: "/tmp/poster.png", Data: pngHeader})
	if err != nil {
		t.Fatalf("UploadImage returned error: %v", err)
	}
	if id != "img-42" {
		t.Fatalf("id = %q, want img-42", id)
	}
	if gotName != "poster.png" || gotType != "image/png" || gotSize != len(pngHeader) {
		t.Fatalf("upload = name %q type %q size %d", gotName, gotType, gotSize)
	}

	_, err = c.UploadImage(ctx, Upload{Filename: "notes.txt", Data: []byte("hello world")})
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("text upload error = %v, want ErrNotImage", err)
	}
}

func TestClient_ImageURLAndFetch(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/movies/images/img-1" {
			_, _ = w.Write(pngHeader)
			return
		}
		http.NotFound(w, r)
	}))

	if got := c.ImageURL(""); got != "" {
		t.Fatalf("ImageURL(empty) = %q", got)
	}
	link := c.ImageURL("img-1")
	if !strings.HasSuffix(link, "/api/movies/images/img-1") {
		t.Fatalf("ImageURL = %q", link)
	}

	info, err := c.FetchImage(testContext(t), "img-1")
	if err != nil {
		t.Fatalf("FetchImage returned error: %v", err)
	}
	if info.MIME != "image/png" || info.Size != len(pngHeader) || info.URL != link {
		t.Fatalf("info = %#v", info)
	}
}

func TestClient_UserAndRatingEndpoints(t *testing.T) {
	var ratingBody RatingRequest
	var profileBody ProfileUpdate
	var deleted bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/movies/3/ratings":
			_ = json.NewDecoder(r.Body).Decode(&ratingBody)
			_, _ = io.WriteString(w, `{"id":1,"movieId":3,"userId":2,"rating":4.5,"timestamp":[2024,1,1,0,0]}`)
		case r.URL.Path == "/api/users/2" && r.Method == http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(&profileBody)
			_ = json.NewEncoder(w).Encode(User{ID: 2, FullName: profileBody.FullName})
		case r.URL.Path == "/api/users/2/rentals":
			_, _ = io.WriteString(w, `[{"id":1,"movieId":3,"status":"RETURNED"}]`)
		case r.URL.Path == "/api/admin/movies/3" && r.Method == http.MethodDelete:
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/api/categories":
			_, _ = io.WriteString(w, `[{"id":1,"name":"Drama"}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	ctx := testContext(t)

	if _, err := c.RateMovie(ctx, 3, RatingRequest{UserID: 2, Rating: 4.4}); err != nil {
		t.Fatalf("RateMovie returned error: %v", err)
	}
	if ratingBody.Rating != 4.5 || ratingBody.UserID != 2 {
		t.Fatalf("rating body = %#v", ratingBody)
	}

	user, err := c.UpdateUser(ctx, 2, ProfileUpdate{FullName: " Jane Doe ", PhoneNumber: "555-123-4567"})
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	if user.FullName != "Jane Doe" || profileBody.PhoneNumber != "555-123-4567" {
		t.Fatalf("user = %#v body = %#v", user, profileBody)
	}

	history, err := c.UserRentals(ctx, 2)
	if err != nil || len(history) != 1 || history[0].Status != rental.Returned {
		t.Fatalf("UserRentals = %#v, %v", history, err)
	}

	if err := c.DeleteMovie(ctx, 3); err != nil || !deleted {
		t.Fatalf("DeleteMovie err=%v deleted=%v", err, deleted)
	}

	categories, err := c.ListCategories(ctx)
	if err != nil || len(categories) != 1 || categories[0].Name != "Drama" {
		t.Fatalf("ListCategories = %#v, %v", categories, err)
	}
}
