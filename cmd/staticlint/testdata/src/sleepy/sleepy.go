package sleepy

import (
	"time"
	clock "time"
)

func wait() {
	time.Sleep(time.Second) // want "time.Sleep is forbidden outside tests"
	clock.Sleep(1)          // want "time.Sleep is forbidden outside tests"
	<-time.After(time.Second)
}
