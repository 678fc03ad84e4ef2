/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package publisher

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/lithammer/shortuuid/v3"

	"gridhawk/common/dto"
	"gridhawk/internal/config"
)

// AlertPublisher pushes alert lifecycle events to downstream consumers.
type AlertPublisher interface {
	PublishAlert(eventType string, alert dto.Alert) error
	Close()
}

const (
	EventAlertCreated   = "alert_created"
	EventAlertRefreshed = "alert_refreshed"
	EventAlertConfirmed = "alert_confirmed"
	EventAlertRejected  = "alert_rejected"
)

type alertEvent struct {
	EventType string    `json:"event_type"`
	Alert     dto.Alert `json:"alert"`
	Timestamp int64     `json:"timestamp"`
}

type MqttPublisher struct {
	client mqtt.Client
	topic  string
	qos    byte
	lc     logger.LoggingClient
}

func NewMqttPublisher(cfg config.MqttConfig, lc logger.LoggingClient) (*MqttPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("%s://%s:%d", cfg.Protocol, cfg.Server, cfg.Port))
	// unique suffix so concurrent service instances do not evict each other
	opts.SetClientID(cfg.ClientId + "-" + shortuuid.New())
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(10 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s:%d: %v", cfg.Server, cfg.Port, token.Error())
	}

	lc.Infof("Connected to MQTT broker %s:%d, publishing alerts on topic %s", cfg.Server, cfg.Port, cfg.Topic)
	return &MqttPublisher{
		client: client,
		topic:  cfg.Topic,
		qos:    byte(cfg.QoS),
		lc:     lc,
	}, nil
}

func (p *MqttPublisher) PublishAlert(eventType string, alert dto.Alert) error {
	payload, err := json.Marshal(alertEvent{
		EventType: eventType,
		Alert:     alert,
		Timestamp: time.Now().UTC().UnixMilli(),
	})
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, p.qos, false, payload)
	if token.Wait() && token.Error() != nil {
		p.lc.Errorf("Failed to publish %s event for alert %s: %v", eventType, alert.Id, token.Error())
		return token.Error()
	}
	p.lc.Debugf("Published %s event for alert %s", eventType, alert.Id)
	return nil
}

func (p *MqttPublisher) Close() {
	p.client.Disconnect(250)
}

// NoopPublisher is used when MQTT export is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishAlert(string, dto.Alert) error { return nil }
func (NoopPublisher) Close()                               {}
