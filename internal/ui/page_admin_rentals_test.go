package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/reel/internal/api"
	"github.com/five82/reel/internal/rental"
)

func openAdminRentals(t *testing.T, gw *fakeGateway) *adminRentalsPage {
	t.Helper()
	p := newAdminRentalsPage(newTestEnv(t, gw)).(*adminRentalsPage)
	cmd := p.Init()
	require.NotNil(t, cmd)
	p.Update(cmd())
	return p
}

func TestAdminRentalsCodeSearchErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
		rows int
	}{
		{"not found", &api.Error{Status: 404, Message: "Rental not found"}, "No rental found with that code", 0},
		{"server error without message", &api.Error{Status: 500}, "Failed to fetch rentals. Please try again.", 1},
		{"server error with message", &api.Error{Status: 503, Message: "Service unavailable"}, "Service unavailable", 1},
		{"transport error", errors.New("connection refused"), "Failed to fetch rentals. Please try again.", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{rentals: []rental.Rental{{ID: 1, Status: rental.Ordered}}, codeErr: tt.err}
			p := openAdminRentals(t, gw)
			require.Len(t, p.table.rows, 1)

			_, cmd := p.Update(codeChosen(" RC-404 "))
			require.NotNil(t, cmd)
			p.Update(cmd())

			assert.Equal(t, tt.want, p.errText)
			assert.Len(t, p.table.rows, tt.rows)
		})
	}
}

func TestAdminRentalsCodeSearchFound(t *testing.T) {
	gw := &fakeGateway{}
	p := openAdminRentals(t, gw)

	_, cmd := p.Update(codeChosen("RC-0021"))
	p.Update(cmd())

	assert.Empty(t, p.errText)
	require.Len(t, p.table.rows, 1)
	assert.Equal(t, "RC-0021", p.table.rows[0].RentalCode)
}

func TestAdminRentalsStatusFilterClearsCode(t *testing.T) {
	gw := &fakeGateway{}
	p := openAdminRentals(t, gw)
	p.query.code = "RC-1"
	p.query.email = "ada@example.com"

	_, cmd := p.Update(keyRunes("f"))
	require.NotNil(t, cmd)
	p.Update(cmd())

	assert.Empty(t, p.query.code)
	last := gw.adminQueries[len(gw.adminQueries)-1]
	assert.Equal(t, api.AdminRentalQuery{Email: "ada@example.com", Status: rental.Statuses()[0].String()}, last)
}
