// Package internaldefs holds the shared metric name table used by every
// exporter. It exists so the Prometheus and OTel exporters render identical
// names without either importing the other.
package internaldefs

import (
	"github.com/JinhyeokFang/capstone"
)

// CounterDef binds an engine counter to its exported name.
type CounterDef struct {
	ID   capstone.MetricID
	Name string
	Help string
}

var CounterDefs = []CounterDef{
	{ID: capstone.MetricLoginSuccess, Name: "capstone_login_success_total", Help: "Successful login attempts."},
	{ID: capstone.MetricLoginFailure, Name: "capstone_login_failure_total", Help: "Failed login attempts."},
	{ID: capstone.MetricSignUpSuccess, Name: "capstone_signup_success_total", Help: "Successful account registrations."},
	{ID: capstone.MetricSignUpDuplicate, Name: "capstone_signup_duplicate_total", Help: "Registrations rejected as duplicate email."},
	{ID: capstone.MetricLogout, Name: "capstone_logout_total", Help: "Refresh tokens revoked by logout."},
	{ID: capstone.MetricRefreshSuccess, Name: "capstone_refresh_success_total", Help: "Access tokens minted from refresh tokens."},
	{ID: capstone.MetricRefreshFailure, Name: "capstone_refresh_failure_total", Help: "Refresh attempts with an invalid token."},
	{ID: capstone.MetricRefreshBlocked, Name: "capstone_refresh_blocked_total", Help: "Refresh attempts with a revoked token."},
}
