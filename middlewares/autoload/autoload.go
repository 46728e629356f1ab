// Package autoload imports the self-registering middleware packages. The fast
// path is not listed: it needs an orchestrator and is passed to the chain
// explicitly.
package autoload

import (
	_ "mudabbir/middlewares/greeting"
	_ "mudabbir/middlewares/tokenbudget"
)
