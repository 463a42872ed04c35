package config

// Configuration key constants to prevent typos and enable autocomplete
const (
	// Scan configuration
	KeyRootPath  = "ROOT_PATH"   // Directory tree scanned for oversized directories
	KeyMinSizeMB = "MIN_SIZE_MB" // Minimum directory size to offer for relocation
	KeyLimit     = "PROMPT_LIMIT"

	// Destination configuration
	KeyDevice     = "DEVICE"
	KeyMountPoint = "MOUNT_POINT"
	KeyFSType     = "FS_TYPE"

	// Persistence configuration
	KeyFstabPath = "FSTAB_PATH"
)

// Default values for configuration keys
var Defaults = map[string]string{
	KeyRootPath:   "/home",
	KeyMinSizeMB:  "1000",
	KeyLimit:      "10",
	KeyDevice:     "/dev/nvme0n1p1",
	KeyMountPoint: "/mnt/extra",
	KeyFSType:     "ext4",
	KeyFstabPath:  "/etc/fstab",
}
