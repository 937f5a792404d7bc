package rtcm3

// GPSEphemeris holds a broadcast navigation message for GPS, QZSS, or
// IRNSS: the three systems share the legacy GPS LNAV shape (messages
// 1019/1044/1041), differing only in a handful of fields the decode
// functions fix up after the common parse.
type GPSEphemeris struct {
	PRN     PRN
	Toc     Time
	Toe     Time
	WeekGPS int // GPS week number of Toe, already rolled over to full range

	IODE    int
	IODC    int
	SVAccur float64 // URA, meters
	SVHealth int
	Code    int // codes on L2 channel
	Flag    int // L2 P data flag

	IDOT    float64 // rad/s
	Crs     float64
	DeltaN  float64 // rad/s
	M0      float64
	Cuc     float64
	Ecc     float64
	Cus     float64
	SqrtA   float64
	Cic     float64
	OMEGA0  float64
	Cis     float64
	I0      float64
	Crc     float64
	Omega   float64
	OMEGADot float64

	TGD      float64
	Fit      float64 // fit interval hours (GPS: 0 or 4; QZSS: 0 or 2; unused for IRNSS)

	Af0, Af1, Af2 float64

	// IRNSS-specific health composition; zero for GPS/QZSS.
	L5Flag int
	SFlag  int
}

// GLOEphemeris holds a GLONASS broadcast ephemeris (message 1020),
// expressed in ECEF PZ-90 position/velocity/acceleration rather than
// Keplerian elements.
type GLOEphemeris struct {
	PRN          PRN
	FreqNum      int // -7..13, raw field minus 7
	IOD          int // tb interval index, stands in for an issue-of-data
	Toe          Time
	MessageFrame Time // time of message frame start (tk)

	Health  int
	AgeDays int // days since last update (NT)

	Pos [3]float64 // meters
	Vel [3]float64 // m/s
	Acc [3]float64 // m/s^2, luni-solar acceleration

	TauN     float64 // clock bias, seconds
	GammaN   float64 // relative frequency bias
	DeltaTau float64 // L1/L2 group delay difference, seconds
}

// GalileoEphemeris holds a Galileo broadcast ephemeris, shared by the
// I/NAV (message 1046) and F/NAV (message 1045) shapes; NAVType records
// which one produced it.
type GalileoEphemeris struct {
	PRN     PRN
	NAVType string // "INAV" or "FNAV"

	Toc    Time
	Toe    Time
	WeekGAL int

	IODNav int
	SISA   float64

	IDOT     float64
	Crs      float64
	DeltaN   float64
	M0       float64
	Cuc      float64
	Ecc      float64
	Cus      float64
	SqrtA    float64
	Cic      float64
	OMEGA0   float64
	Cis      float64
	I0       float64
	Crc      float64
	Omega    float64
	OMEGADot float64

	BGDe1e5a float64
	BGDe1e5b float64 // zero for F/NAV

	E5aHS  int
	E5bHS  int // zero for F/NAV
	E1BHS  int // zero for F/NAV
	E5aDVS int
	E5bDVS int
	E1BDVS int

	Af0, Af1, Af2 float64
}

// SBASEphemeris holds a broadcast SBAS geostationary ephemeris (message
// 1043), expressed in ECEF like GLONASS but on the WGS-84 frame with
// a shorter, coarser field set.
type SBASEphemeris struct {
	PRN     PRN
	IODN    int
	Toe     Time
	URA     float64

	Pos [3]float64
	Vel [3]float64
	Acc [3]float64

	Af0, Af1 float64

	Health int
}

// BDSEphemeris holds a BeiDou broadcast ephemeris (message 1042),
// Keplerian like GPS but with BeiDou-specific time and health fields.
type BDSEphemeris struct {
	PRN     PRN
	Toc     Time
	Toe     Time
	WeekBDT int

	IODE int
	IODC int
	URAI int
	SVH  int

	IDOT     float64
	Crs      float64
	DeltaN   float64
	M0       float64
	Cuc      float64
	Ecc      float64
	Cus      float64
	SqrtA    float64
	Cic      float64
	OMEGA0   float64
	Cis      float64
	I0       float64
	Crc      float64
	Omega    float64
	OMEGADot float64

	TGD1, TGD2 float64

	Af0, Af1, Af2 float64
}
