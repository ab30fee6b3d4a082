package app

import (
	"fmt"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/logging/logrusl"
	"github.com/mandelsoft/logging/logrusr"
)

var REALM = logging.DefineRealm("relplan/relctl", "release control command")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

// ConfigureLogging sets the human readable base logger and enables
// the given level for all realms of the tool.
func ConfigureLogging(level string) error {
	l, err := logging.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	lctx := logging.DefaultContext()
	lctx.SetBaseLogger(logrusr.New(logrusl.Human(true).NewLogrus()))
	lctx.AddRule(logging.NewConditionRule(l, logging.NewRealmPrefix("relplan")))
	return nil
}
