package util

import (
	"fmt"
	"net"
	"os/exec"
	"runtime"
)

// OpenBrowser 打开默认浏览器
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		// rundll32 比 cmd /c start 更稳定
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	return cmd.Start()
}

// OpenBrowserWithFallback 主方式失败时依次尝试常见浏览器
func OpenBrowserWithFallback(url string) error {
	err := OpenBrowser(url)
	if err == nil {
		return nil
	}

	switch runtime.GOOS {
	case "windows":
		return exec.Command("explorer", url).Start()
	case "linux":
		for _, browser := range []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"} {
			if err := exec.Command(browser, url).Start(); err == nil {
				return nil
			}
		}
	}

	return err
}

// FindAvailablePort 从 startPort 起向后找第一个能监听的端口，最多尝试 attempts 次。
// 与服务一样在所有网卡上探测；startPort 必须为正数。
func FindAvailablePort(startPort, attempts int) (int, error) {
	if startPort <= 0 || startPort > 65535 {
		return 0, fmt.Errorf("invalid start port %d", startPort)
	}
	for p := startPort; p < startPort+attempts && p <= 65535; p++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", p))
		if err != nil {
			continue
		}
		ln.Close()
		return p, nil
	}
	return 0, fmt.Errorf("no free port in [%d, %d)", startPort, startPort+attempts)
}

// DashboardURL 本地看板接口地址
func DashboardURL(port int, month string) string {
	if month == "" {
		return fmt.Sprintf("http://localhost:%d/api/months", port)
	}
	return fmt.Sprintf("http://localhost:%d/api/dashboard/%s", port, month)
}
