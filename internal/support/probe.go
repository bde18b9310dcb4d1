package support

import (
	"context"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"slices"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/wallyouneed/wallyouneed/internal/logger"
)

// Probe gathers the facts written into an environment snapshot.
// Implementations never fail; facts that cannot be read are left empty.
type Probe interface {
	SystemInfo(ctx context.Context) SystemInfo
	LoadedComponents(ctx context.Context) []string
}

// HostProbe reads facts about the running process and its host via gopsutil.
type HostProbe struct {
	log logger.Logger
}

// NewHostProbe creates a probe for the current process
func NewHostProbe(log logger.Logger) *HostProbe {
	if log == nil {
		log = GetLogger()
	}
	return &HostProbe{log: log.Module("probe")}
}

// SystemInfo collects host and runtime facts. Timestamp is left for the caller.
func (p *HostProbe) SystemInfo(ctx context.Context) SystemInfo {
	info := SystemInfo{
		RuntimeVersion:  runtime.Version(),
		Is64BitProcess:  strconv.IntSize == 64,
		ProcessorCount:  runtime.NumCPU(),
		SystemDirectory: systemDirectory(),
		UserName:        currentUserName(),
		WorkingSet:      -1,
	}

	var kernelArch string
	if hostInfo, err := host.InfoWithContext(ctx); err != nil {
		p.log.Debug("host info unavailable", logger.Error(err))
	} else {
		info.OSVersion = formatOSVersion(hostInfo)
		info.MachineName = hostInfo.Hostname
		kernelArch = hostInfo.KernelArch
	}

	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		info.MachineName = hostname
	}

	// A 64-bit process can only run on a 64-bit OS; otherwise trust the kernel arch
	info.Is64BitOS = info.Is64BitProcess || strings.Contains(kernelArch, "64")
	info.UserDomain = userDomain(info.MachineName)

	if proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err != nil {
		p.log.Debug("process handle unavailable", logger.Error(err))
	} else if mem, err := proc.MemoryInfoWithContext(ctx); err != nil || mem == nil {
		p.log.Debug("process memory info unavailable", logger.Error(err))
	} else {
		info.WorkingSet = int64(mem.RSS) //nolint:gosec // RSS never approaches MaxInt64
	}

	return info
}

// LoadedComponents lists the Go modules compiled into the binary followed by the
// shared libraries mapped into the process.
func (p *HostProbe) LoadedComponents(ctx context.Context) []string {
	components := goModules()
	return append(components, p.nativeLibraries(ctx)...)
}

// goModules renders build info as path@version lines, main module first
func goModules() []string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	modules := make([]string, 0, len(bi.Deps)+1)
	if bi.Main.Path != "" {
		modules = append(modules, moduleLine(&bi.Main))
	}
	for _, dep := range bi.Deps {
		modules = append(modules, moduleLine(dep))
	}
	return modules
}

func moduleLine(m *debug.Module) string {
	line := m.Path
	if m.Version != "" {
		line += "@" + m.Version
	}
	if m.Replace != nil {
		line += " => " + m.Replace.Path
		if m.Replace.Version != "" {
			line += "@" + m.Replace.Version
		}
	}
	return line
}

// nativeLibraries returns unique shared library paths from the process memory map.
// Platforms without memory map support yield nothing.
func (p *HostProbe) nativeLibraries(ctx context.Context) []string {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return nil
	}

	maps, err := proc.MemoryMapsWithContext(ctx, true)
	if err != nil || maps == nil {
		p.log.Debug("memory maps unavailable", logger.Error(err))
		return nil
	}

	var libs []string
	for _, m := range *maps {
		if isSharedLibrary(m.Path) && !slices.Contains(libs, m.Path) {
			libs = append(libs, m.Path)
		}
	}
	return libs
}

// isSharedLibrary matches absolute paths to .so (including versioned), .dylib and .dll files
func isSharedLibrary(path string) bool {
	if !filepath.IsAbs(path) {
		return false
	}
	name := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(name, ".dll") ||
		strings.HasSuffix(name, ".dylib") ||
		strings.HasSuffix(name, ".so") ||
		strings.Contains(name, ".so.")
}

func formatOSVersion(info *host.InfoStat) string {
	var parts []string
	for _, s := range []string{info.Platform, info.PlatformVersion} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	kernel := strings.TrimSpace(info.OS + " " + info.KernelVersion)
	if kernel != "" {
		parts = append(parts, "("+kernel+")")
	}
	return strings.Join(parts, " ")
}

// systemDirectory is System32 on Windows and the system library directory elsewhere
func systemDirectory() string {
	if runtime.GOOS == "windows" {
		root := os.Getenv("SystemRoot")
		if root == "" {
			root = os.Getenv("windir")
		}
		if root == "" {
			return ""
		}
		return filepath.Join(root, "System32")
	}
	return "/usr/lib"
}

// userDomain is the logon domain on Windows; other platforms report the machine name
func userDomain(machineName string) string {
	if runtime.GOOS == "windows" {
		if domain := os.Getenv("USERDOMAIN"); domain != "" {
			return domain
		}
	}
	return machineName
}

// currentUserName returns the account name without any DOMAIN\ prefix
func currentUserName() string {
	name := ""
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = os.Getenv("USERNAME")
	}
	if i := strings.LastIndex(name, `\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}
