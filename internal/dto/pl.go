package dto

import (
	"time"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
)

// PLQuery selects the viewer perspective, date window and filters for a
// profit-and-loss report.
type PLQuery struct {
	ViewerRole  domain.PLViewerRole
	ViewerID    string
	From        time.Time
	To          time.Time
	AgentID     *string
	Destination *string
}

// PLQueryParams is the HTTP binding shape of a P&L request; the viewer fields
// come from the authenticated request context, not the query string.
type PLQueryParams struct {
	From        time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To          time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	AgentID     *string   `form:"agentId"`
	Destination *string   `form:"destination"`
}
