package rtcm3

// Scale factors for ephemeris bit fields, named the way IS-GPS/RTCM
// interface documents name them (2^-n). SC2RAD converts GPS/Galileo/BeiDou
// semi-circle units to radians.
const (
	SC2RAD = 3.1415926535898

	p2_5  = 1.0 / 32
	p2_6  = 1.0 / 64
	p2_10 = 1.0 / 1024
	p2_11 = 1.0 / 2048
	p2_19 = 1.0 / 524288
	p2_20 = 1.0 / 1048576
	p2_21 = 1.0 / 2097152
	p2_24 = 1.0 / 16777216
	p2_28 = 1.0 / 268435456
	p2_27 = 1.0 / 134217728
	p2_29 = 1.0 / 536870912
	p2_30 = 1.0 / 1073741824
	p2_31 = 1.0 / 2147483648
	p2_33 = p2_31 / 4
	p2_34 = p2_31 / 8
	p2_40 = p2_31 / 512
	p2_43 = p2_31 / 4096
	p2_46 = p2_31 / 32768
	p2_55 = p2_31 / 16777216
	p2_59 = p2_31 / 268435456
	p2_66 = p2_31 / 34359738368
)
