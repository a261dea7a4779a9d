// Package constants provides shared constants used throughout the betaox codebase.
// This includes physical constants, pipeline defaults, file permissions, and the
// naming patterns of the files the calculator writes.
package constants

// Physical constants used by the spectral-index calculation
const (
	// FrequencyXRay is the observing frequency in Hz of a 1 keV X-ray photon (E = hv)
	FrequencyXRay = 2.415e+17

	// SecondsPerHour converts optical elapsed times (recorded in hours) to seconds
	SecondsPerHour = 3600.0
)

// Pipeline defaults
const (
	// DefaultTolerance is the default percent difference allowed between X-ray and optical elapsed times
	DefaultTolerance = 5.0

	// DefaultOutputDir is where paired tables and plots are written
	DefaultOutputDir = "./Written_Files"

	// DefaultConfigName is the base name of the config file searched in $HOME and the working directory
	DefaultConfigName = ".betaox"

	// EnvPrefix is the prefix for environment variables read by viper
	EnvPrefix = "BETAOX"
)

// Darkness classification thresholds
const (
	// JakobssonThreshold is the beta_OX value below which a burst is optically dark
	JakobssonThreshold = 0.5

	// VanDerHorstOffset is the offset from beta_X below which a burst is optically dark
	VanDerHorstOffset = 0.5
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Output file name patterns, formatted with the tolerance value
const (
	// ComprehensiveFilePattern names the table holding every field of each paired record
	ComprehensiveFilePattern = "Comprehensive_Paired_Data_Table_%s%%.csv"

	// TerseFilePattern names the table holding identifiers, times and indexes only
	TerseFilePattern = "GRB_Pairings-dt_%s%%.csv"

	// PlotFilePattern names the beta_OX vs beta_X plot
	PlotFilePattern = "Beta_OX_vs_Beta_X_%s%%.png"

	// DeltaBetaSuffix marks files classified with the temporal term
	DeltaBetaSuffix = "_w_delBeta"
)
