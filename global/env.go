package global

import (
	"github.com/haierkeys/note-offline-sync/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "Note Offline Sync"
)

func init() {
	ROOT = fileurl.GetExePath() + "/"
}
