package util

import (
	"github.com/rs/xid"
)

// GenJobName generates a job name of the form "sim_<id>".
// IDs are globally unique and sortable.
func GenJobName() string {
	id := xid.New()
	return "sim_" + id.String()
}
