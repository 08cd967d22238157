// Package config loads device configuration from YAML.
//
// A configuration names the store, the optional bridge and the parameters
// to declare:
//
//	device: kitchen
//	capacity: 32
//	timeout: 50ms
//	store:
//	  kind: file
//	  path: /var/lib/ardupar/kitchen.eeprom
//	  size: 1024
//	bridge:
//	  listen: ":9000"
//	  advertise: true
//	parameters:
//	  - {command: SPEED, kind: int, min: 0, max: 100, default: "50", persist: true}
//	  - {command: NAME, kind: string, capacity: 16, default: kitchen, persist: true}
//	  - {command: RESET, kind: trigger}
//
// Environment variables prefixed with ARDUPAR_ override file values; see
// ApplyEnv.
package config
