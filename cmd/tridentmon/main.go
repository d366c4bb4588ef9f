package main

import (
	"flag"
	"log"
	"os"

	"github.com/robotalks/trident/pkg/telemetry"
)

var (
	mqttURL = "mqtt://localhost:1883/trident/"
	topic   = telemetry.Topic("+")
)

func init() {
	if val := os.Getenv("TRIDENT_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&topic, "topic", topic, "Topic to subscribe.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := telemetry.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	q.Sub(topic, telemetry.Handler(func(topic string, payload []byte) {
		ev, err := telemetry.DecodeEvent(payload)
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		log.Printf("%s: %s", topic, ev)
	}))
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	<-(chan struct{})(nil)
}
