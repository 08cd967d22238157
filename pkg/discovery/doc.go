// Package discovery advertises and finds parameter bridges over mDNS/DNS-SD.
//
// A device running a UDP bridge advertises one _ardupar._udp service.
// Instance name is the device name. TXT records carry:
//   - dev: device name
//   - ver: wire format version
//   - n: number of registered parameters (optional)
//
// Tools such as ardupar-send browse for the service when no address is
// given on the command line.
package discovery
