package sprite

import (
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/sprite3d/internal/logger"
)

// goroutineID returns the current goroutine's numeric id, parsed from the
// stack header ("goroutine N [running]:"). Only used for usage diagnostics,
// never for control flow.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	if i := strings.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// checkOwner reports a diagnostic when op is invoked from a goroutine other
// than the one that created the node. Rendering resources are single-thread
// affine, so this is a usage error, but execution continues.
func (n *Node) checkOwner(op string) {
	if id := goroutineID(); id != n.owner {
		logger.Warn("node used from wrong goroutine",
			zap.String("node", n.Name),
			zap.String("op", op),
			zap.Uint64("owner", n.owner),
			zap.Uint64("caller", id),
		)
	}
}
