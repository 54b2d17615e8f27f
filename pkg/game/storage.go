package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/fireworks/pkg/utils"
)

// AppName gdata 存储使用的应用名，决定存档目录
const AppName = "fireworks"

// OpenStorage 打开跨平台存储
//
// 失败时返回 nil，调用方进入降级模式（设置只保存在内存中）。
//
// 参数：
//   - appName: 应用名，空字符串时使用 AppName
func OpenStorage(appName string) *gdata.Manager {
	if appName == "" {
		appName = AppName
	}

	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[Storage] Warning: %v", err)
	}

	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[Storage] Warning: gdata unavailable, settings will not persist: %v", err)
		return nil
	}

	if path := utils.GetStoragePath(); path != "" {
		log.Printf("[Storage] Using %s", path)
	}
	return manager
}
