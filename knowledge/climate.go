package knowledge

// Measurements lists the categories of climate observations on the CDC
// server. Each category has its own remote subdirectory and field schema;
// daily observations live under the legacy "kl" folder.
var Measurements = []Category{
	{Key: "KL", Name: "daily_observations", Folder: "kl"},
	{Key: "TU", Name: "air_temperature"},
	{Key: "CS", Name: "cloud_type"},
	{Key: "N", Name: "cloudiness"},
	{Key: "TD", Name: "dew_point"},
	{Key: "TX", Name: "extreme_temperature"},
	{Key: "FX", Name: "extreme_wind"},
	{Key: "RR", Name: "precipitation"},
	{Key: "P0", Name: "pressure"},
	{Key: "EB", Name: "soil_temperature"},
	{Key: "ST", Name: "solar"},
	{Key: "SD", Name: "sun"},
	{Key: "VV", Name: "visibility"},
	{Key: "FF", Name: "wind"},
	{Key: "F", Name: "wind_synop"},
}

// Init builds the registry of per-resolution schemas.
//
// Field order must match the column order of the published records after
// the station id and timestamp columns. Units stay as published by the
// provider (°C, hPa, m/s, mm, ...); no conversion happens anywhere.
// Erroneous or suspicious source values are set to -999 by the provider.
func Init() *Registry {
	return &Registry{map[string]*Resolution{
		"hourly": {
			Name:            "hourly",
			TimestampLayout: "2006010215",
			Categories: map[string][]Field{
				// QN_9; TT_TU air temperature 2m [°C]; RF_TU relative humidity 2m [%]
				"air_temperature": {
					{"air_temperature_quality_level", Int},
					{"air_temperature_200", Real},
					{"relative_humidity_200", Real},
				},
				// QN_2; V_TE002..V_TE100 soil temperature at depth [°C]
				"soil_temperature": {
					{"soil_temperature_quality_level", Int},
					{"soil_temperature_002", Real},
					{"soil_temperature_005", Real},
					{"soil_temperature_010", Real},
					{"soil_temperature_020", Real},
					{"soil_temperature_050", Real},
					{"soil_temperature_100", Real},
				},
				// QN_8; R1 precipitation height [mm]; RS_IND indicator; WRTR form (WR-code)
				"precipitation": {
					{"precipitation_quality_level", Int},
					{"precipitation_height", Real},
					{"precipitation_fallen", Bool},
					{"precipitation_form", Int},
				},
				// QN_7; SD_SO sunshine duration [min]
				"sun": {
					{"sun_quality_level", Int},
					{"sun_duration", Real},
				},
				// QN_8; P mean sea level pressure [hPa]; P0 pressure at station height [hPa]
				"pressure": {
					{"pressure_quality_level", Int},
					{"pressure_msl", Real},
					{"pressure_station", Real},
				},
				// QN_3; F mean wind speed [m/s]; D mean wind direction [deg]
				"wind": {
					{"wind_quality_level", Int},
					{"wind_speed", Real},
					{"wind_direction", Int},
				},
				// QN_8; V_N_I measurement source (P person, I instrument); V_N total cover [1/8]
				"cloudiness": {
					{"cloudiness_quality_level", Int},
					{"cloudiness_source", Text},
					{"cloudiness_total_cover", Int},
				},
				// QN_8; V_VV_I measurement source; V_VV visibility [m]
				"visibility": {
					{"visibility_quality_level", Int},
					{"visibility_source", Text},
					{"visibility_value", Int},
				},
				// QN_592; radiation sums [J/cm^2]; SD_STRAHL sunshine [min];
				// ZENITH [deg]; MESS_DATUM_WOZ end of interval in true solar time
				"solar": {
					{"solar_quality_level", Int},
					{"solar_atmosphere", Real},
					{"solar_dhi", Real},
					{"solar_ghi", Real},
					{"solar_sunshine", Int},
					{"solar_zenith", Real},
					{"solar_end_of_interval", Timestamp},
				},
			},
		},
		"10_minutes": {
			Name:            "10_minutes",
			TimestampLayout: "200601021504",
			Categories: map[string][]Field{
				// QN; PP_10 [hPa]; TT_10 2m [°C]; TM5_10 5cm [°C]; RF_10 [%]; TD_10 [°C]
				"air_temperature": {
					{"air_temperature_quality_level", Int},
					{"pressure_station", Real},
					{"air_temperature_200", Real},
					{"air_temperature_005", Real},
					{"relative_humidity_200", Real},
					{"dewpoint_temperature_200", Real},
				},
				// QN; DS_10, GS_10, LS_10 radiation sums [J/cm^2]; SD_10 sunshine [h]
				"solar": {
					{"solar_quality_level", Int},
					{"solar_dhi", Real},
					{"solar_ghi", Real},
					{"solar_sunshine", Real},
					{"solar_atmosphere", Real},
				},
			},
		},
		"daily": {
			Name:            "daily",
			TimestampLayout: "20060102",
			Categories: map[string][]Field{
				// QN_3; FX gust max [m/s]; FM wind mean [m/s]; QN_4; RSK precipitation [mm];
				// RSKF form; SDK sunshine [h]; SHK_TAG snow depth [cm]; NM cloud cover [1/8];
				// VPM vapor pressure [hPa]; PM pressure [hPa]; TMK temperature [°C];
				// UPM humidity [%]; TXK/TNK 2m extremes [°C]; TGK 5cm minimum [°C]
				"daily_observations": {
					{"daily_quality_level_3", Int},
					{"wind_gust_max", Real},
					{"wind_velocity_mean", Real},
					{"daily_quality_level_4", Int},
					{"precipitation_height", Real},
					{"precipitation_form", Int},
					{"sunshine_duration", Real},
					{"snow_depth", Real},
					{"cloud_cover", Real},
					{"vapor_pressure", Real},
					{"pressure", Real},
					{"temperature", Real},
					{"humidity", Real},
					{"temperature_max_200", Real},
					{"temperature_min_200", Real},
					{"temperature_min_005", Real},
				},
				"soil_temperature": {
					{"soil_temperature_quality_level", Int},
					{"soil_temperature_002", Real},
					{"soil_temperature_005", Real},
					{"soil_temperature_010", Real},
					{"soil_temperature_020", Real},
					{"soil_temperature_050", Real},
				},
				"solar": {
					{"solar_quality_level", Int},
					{"solar_atmosphere", Real},
					{"solar_dhi", Real},
					{"solar_ghi", Real},
					{"solar_sunshine", Real},
				},
			},
		},
	}}
}
