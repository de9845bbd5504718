package ui

import (
	"boothpulse/domain/core"

	"github.com/gin-gonic/gin"
)

const orgIDKey = "org_id"

// defaultOrgID keeps single-org deployments working without the header
const defaultOrgID = core.OrgID("default-org")

// orgScope reads the caller's organization from the X-Org-ID header and
// stamps it on the request context. Authorization itself is enforced by
// the persistence backend; this is a pass-through, never a gate.
func orgScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := defaultOrgID
		if header := c.GetHeader("X-Org-ID"); header != "" {
			if parsed, err := core.ParseOrgID(header); err == nil {
				orgID = parsed
			}
		}
		c.Set(orgIDKey, orgID)
		c.Next()
	}
}

// requestOrg returns the org stamped by orgScope
func requestOrg(c *gin.Context) core.OrgID {
	if v, ok := c.Get(orgIDKey); ok {
		if orgID, ok := v.(core.OrgID); ok {
			return orgID
		}
	}
	return defaultOrgID
}
