package config

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

// LoadConfig reads .env into viper. A missing .env is not an error; every
// key has a default so the services can start with no local configuration.
func LoadConfig() error {
	setDefaults()
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func setDefaults() {
	// Shop location: Mithaas Delights, Indore (Madhya Pradesh).
	viper.SetDefault("SHOP_LAT", 22.738152)
	viper.SetDefault("SHOP_LON", 75.831858)

	viper.SetDefault("FREE_DELIVERY_MIN_AMOUNT", 1500.0)
	viper.SetDefault("FREE_DELIVERY_MAX_DISTANCE_KM", 10.0)
	viper.SetDefault("DELIVERY_CHARGE_0_10KM", 50.0)
	viper.SetDefault("DELIVERY_CHARGE_10_20KM", 100.0)
	viper.SetDefault("DELIVERY_CHARGE_20_30KM", 150.0)
	viper.SetDefault("DELIVERY_CHARGE_ABOVE_30KM", 200.0)

	viper.SetDefault("QUOTE_CACHE_TTL_MIN", 60)
	viper.SetDefault("GEOCODER_TIMEOUT_SEC", 2)

	viper.SetDefault("DELIVERY_SERVICE_ADDR", ":8087")
	viper.SetDefault("ANALYTICS_SERVICE_ADDR", ":8088")
}

func GetDBConnectionString() string {
	return viper.GetString("POSTGRES_URL")
}
