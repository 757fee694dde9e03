package shell

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"
)

// Seams for output that changes on every call.
var (
	now = time.Now

	// shortHash looks like an abbreviated git object id.
	shortHash = func() string {
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
	}

	// deploymentID is the 8 character suffix of a preview URL. The tail of an
	// xid carries its counter, so consecutive calls differ.
	deploymentID = func() string {
		id := xid.New().String()
		return id[len(id)-8:]
	}
)
