package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const stack = `goroutine 1 [running]:
runtime/debug.Stack()
	/usr/lib/go/src/runtime/debug/stack.go:24 +0x5e
github.com/staticafi/satt/common/log/hooks.contextHook.Fire({}, 0xc0000b4000)
	/home/u/src/satt/common/log/hooks/context_hook.go:25 +0x25
github.com/sirupsen/logrus.LevelHooks.Fire(0x0?, 0x4, 0xc0000b4000)
	/home/u/go/pkg/mod/github.com/sirupsen/logrus@v1.4.2/hooks.go:28 +0x8f
github.com/sirupsen/logrus.(*Entry).log(0xc0000b4000, 0x4, {0xc000012345, 0x5})
	/home/u/go/pkg/mod/github.com/sirupsen/logrus@v1.4.2/entry.go:214 +0x2a5
github.com/staticafi/satt/dispatch.(*Dispatcher).finish(0xc000100000, 0xc000102000)
	/home/u/src/satt/dispatch/dispatcher.go:301 +0x1c5
main.main()
	/home/u/src/satt/binaries/satt/main.go:12 +0x25
`

func TestCallSite(t *testing.T) {
	assert.Equal(t, "dispatch/dispatcher.go:301", callSite(stack))
}

func TestCallSiteWithoutHookFrame(t *testing.T) {
	assert.Equal(t, "", callSite("goroutine 1 [running]:\nmain.main()\n\t/x/main.go:1 +0x1\n"))
}
