package analysis

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("relplan/analysis", "project analysis")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
