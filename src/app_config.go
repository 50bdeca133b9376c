package main

import (
	"idproof/pkg/logger"
	"idproof/pkg/rabbitmq"
)

type ApiConfigJson struct {
	LoggerConf   logger.LoggerConfigJson   `json:"logger"`
	RabbitmqConf rabbitmq.RabbitmqConfigJson `json:"rabbitmq"`
	RestConf     RestConfigJson            `json:"rest"`
	DatabaseConf DatabaseConfigJson        `json:"database"`
	AuthConf     AuthConfigJson            `json:"auth"`
	PolicyConf   PolicyConfigJson          `json:"policy"`
}

func (acj ApiConfigJson) ConvertToDomain() ApiConfig {
	return ApiConfig{
		LoggerConf:   acj.LoggerConf.ConvertToDomain(),
		RabbitmqConf: acj.RabbitmqConf.ConvertToDomain(),
		RestConf:     acj.RestConf.ConvertToDomain(),
		DatabaseConf: acj.DatabaseConf.ConvertToDomain(),
		AuthConf:     acj.AuthConf.ConvertToDomain(),
		PolicyConf:   acj.PolicyConf.ConvertToDomain(),
	}
}

type ApiConfig struct {
	LoggerConf   logger.LoggerConfig
	RabbitmqConf rabbitmq.RabbitmqConfig
	RestConf     RestConfig
	DatabaseConf DatabaseConfig
	AuthConf     AuthConfig
	PolicyConf   PolicyConfig
}

func (ac ApiConfig) GetLoggerConfig() logger.LoggerConfig {
	return ac.LoggerConf
}

func (ac ApiConfig) GetRabbitmqConfig() rabbitmq.RabbitmqConfig {
	return ac.RabbitmqConf
}

func (ac ApiConfig) GetRestApiPort() uint16 {
	return ac.RestConf.Port
}

type RestConfigJson struct {
	Port          uint16 `json:"port"`
	AllowedOrigin string `json:"allowed_origin"`
}

type RestConfig struct {
	Port          uint16
	AllowedOrigin string
}

func (rcj RestConfigJson) ConvertToDomain() RestConfig {
	return RestConfig{
		Port:          rcj.Port,
		AllowedOrigin: rcj.AllowedOrigin,
	}
}

type DatabaseConfigJson struct {
	ConnectionString string `json:"connection_string"`
}

type DatabaseConfig struct {
	ConnectionString string
}

func (dcj DatabaseConfigJson) ConvertToDomain() DatabaseConfig {
	return DatabaseConfig{ConnectionString: dcj.ConnectionString}
}

type AuthConfigJson struct {
	JwksFile string `json:"jwks_file"`
}

type AuthConfig struct {
	JwksFile string
}

func (acj AuthConfigJson) ConvertToDomain() AuthConfig {
	return AuthConfig{JwksFile: acj.JwksFile}
}

type PolicyConfigJson struct {
	MinimumAge         int64  `json:"minimum_age"`
	FaceMatchThreshold int64  `json:"face_match_threshold"`
	ApprovedGroup      string `json:"approved_group"`
	ChallengeTtlSec    int64  `json:"challenge_ttl_sec"`
}

type PolicyConfig struct {
	MinimumAge         int64
	FaceMatchThreshold int64
	ApprovedGroup      string
	ChallengeTtlSec    int64
}

func (pcj PolicyConfigJson) ConvertToDomain() PolicyConfig {
	return PolicyConfig{
		MinimumAge:         pcj.MinimumAge,
		FaceMatchThreshold: pcj.FaceMatchThreshold,
		ApprovedGroup:      pcj.ApprovedGroup,
		ChallengeTtlSec:    pcj.ChallengeTtlSec,
	}
}
