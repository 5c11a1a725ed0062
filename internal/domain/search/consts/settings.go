package consts

// Setting keys
const (
	SettingMode           = "mode"
	SettingPrivateLink    = "private_link"
	SettingAutoDelete     = "auto_delete"
	SettingAutoDeleteTime = "auto_delete_time"
	SettingNRFImage       = "nrf_image"
	SettingDBChannel      = "db_channel"
)

// Mode values
const (
	ModePublic  = "public"
	ModePrivate = "private"
)

// Auto delete values
const (
	AutoDeleteOn  = "on"
	AutoDeleteOff = "off"
)
