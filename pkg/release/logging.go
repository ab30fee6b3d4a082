package release

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("relplan/release", "release planning and tracking")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
