package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"rsdashboard/internal/model"
)

// AppConfig 应用配置
type AppConfig struct {
	Month          string              `toml:"month" yaml:"month"`
	VATRate        float64             `toml:"vat_rate" yaml:"vat_rate" validate:"gte=0,lt=1"`
	Paths          PathsConfig         `toml:"paths" yaml:"paths"`
	Server         ServerConfig        `toml:"server" yaml:"server"`
	Log            LogConfig           `toml:"log" yaml:"log"`
	Targets        map[string]float64  `toml:"targets" yaml:"targets"`
	RoomTypeMap    map[string][]string `toml:"room_type_map" yaml:"room_type_map"`
	ExtraIncomeMap map[string][]string `toml:"extra_income_map" yaml:"extra_income_map"`
}

// PathsConfig 目录配置
type PathsConfig struct {
	RawDir     string `toml:"raw_dir" yaml:"raw_dir" validate:"required"`
	WorkingDir string `toml:"working_dir" yaml:"working_dir"`
	JSONDir    string `toml:"json_dir" yaml:"json_dir" validate:"required"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port" yaml:"port" validate:"gte=1,lte=65535"`
	DevMode bool `toml:"dev_mode" yaml:"dev_mode"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	Format string `toml:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		VATRate: 0.15,
		Paths: PathsConfig{
			RawDir:     "outputs/raw",
			WorkingDir: "outputs/working",
			JSONDir:    "outputs/json",
		},
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Targets:        map[string]float64{},
		RoomTypeMap:    map[string][]string{},
		ExtraIncomeMap: map[string][]string{},
	}
}

// LoadConfig 读取配置文件（.toml / .yaml / .yml），再加载同目录 .env 并应用环境变量覆盖。
// 配置文件不存在时使用默认配置。
func LoadConfig(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, err
	}

	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", envPath, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *AppConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return toml.Unmarshal(data, cfg)
	}
}

// applyEnv 环境变量覆盖
func (c *AppConfig) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("VAT_RATE")); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("VAT_RATE: %w", err)
		}
		c.VATRate = rate
	}
	if v := os.Getenv("RSD_MONTH"); v != "" {
		c.Month = v
	}
	if v := os.Getenv("RSD_RAW_DIR"); v != "" {
		c.Paths.RawDir = v
	}
	if v := os.Getenv("RSD_WORKING_DIR"); v != "" {
		c.Paths.WorkingDir = v
	}
	if v := os.Getenv("RSD_JSON_DIR"); v != "" {
		c.Paths.JSONDir = v
	}
	if v := os.Getenv("RSD_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// SaveConfig 保存配置为 TOML
func SaveConfig(path string, cfg *AppConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var validate = newValidator()

// newValidator 字段名取 toml 标签，报错信息与配置文件中的键一致
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate 校验配置：字段取值范围、月份格式、分类别名不交叉
func (c *AppConfig) Validate() error {
	var errs []error
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, fmt.Errorf("%s: failed %q (value %v)", fieldPath(fe.Namespace()), fe.ActualTag(), fe.Value()))
		}
	}
	if c.Month != "" {
		if _, err := model.ParseMonth(c.Month); err != nil {
			errs = append(errs, err)
		}
	}
	if err := checkAliasOverlap("room_type_map", c.RoomTypeMap); err != nil {
		errs = append(errs, err)
	}
	if err := checkAliasOverlap("extra_income_map", c.ExtraIncomeMap); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// fieldPath "AppConfig.log.level" -> "log.level"
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// checkAliasOverlap 同一映射内，不同分类的别名若互为子串，则任何命中较长别名的产品都会被两个分类重复计入
func checkAliasOverlap(section string, m map[string][]string) error {
	cats := model.NewCategoryMap(m)
	for i := 0; i < len(cats); i++ {
		for j := i + 1; j < len(cats); j++ {
			for _, a := range cats[i].Aliases {
				for _, b := range cats[j].Aliases {
					la, lb := strings.ToLower(a), strings.ToLower(b)
					if strings.Contains(la, lb) || strings.Contains(lb, la) {
						return fmt.Errorf("%s: alias %q of %q overlaps alias %q of %q", section, a, cats[i].Key, b, cats[j].Key)
					}
				}
			}
		}
	}
	return nil
}

// ResolveMonth 月份优先级：显式参数 > 配置 > 上一个自然月
func (c *AppConfig) ResolveMonth(flagMonth string, now time.Time) (model.MonthPeriod, error) {
	if flagMonth != "" {
		return model.ParseMonth(flagMonth)
	}
	if c.Month != "" {
		return model.ParseMonth(c.Month)
	}
	return model.MonthOf(now).Previous(), nil
}

// EnsureDirs 确保原始/中间/输出目录存在
func EnsureDirs(cfg *AppConfig) error {
	for _, dir := range []string{cfg.Paths.RawDir, cfg.Paths.WorkingDir, cfg.Paths.JSONDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
