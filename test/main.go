package main

import (
	"fmt"

	"github.com/henderiw/rangespace/pkg/interval"
	"github.com/henderiw/rangespace/pkg/ipspace"
	"github.com/henderiw/rangespace/pkg/metric"
	"github.com/henderiw/rangespace/pkg/space"
	"k8s.io/apimachinery/pkg/labels"
)

func main() {
	s := space.New[metric.Uint32, string]()
	s.Mark(interval.New[metric.Uint32](10, 20), "A")
	s.Mark(interval.New[metric.Uint32](21, 30), "A")
	s.Mark(interval.New[metric.Uint32](15, 18), "B")
	s.Fill(interval.New[metric.Uint32](0, 40), "C")

	it := s.Iterate()
	for it.Next() {
		fmt.Println("range", it.Range().String(), "payload", it.Payload())
	}

	if rng, payload, ok := s.Find(metric.Uint32(16)); ok {
		fmt.Println("find 16:", rng.String(), payload)
	}

	ips := ipspace.New()
	if err := ips.Mark("10.0.0.10-10.0.0.20", labels.Set{"tenant": "a"}); err != nil {
		fmt.Println("mark failed:", err)
		return
	}
	if err := ips.Fill("10.0.0.0-10.0.0.255", labels.Set{"tenant": "spare"}); err != nil {
		fmt.Println("fill failed:", err)
		return
	}
	for _, entry := range ips.GetAll() {
		fmt.Println("entry", entry.String())
	}
	routes, err := ips.Routes()
	if err != nil {
		fmt.Println("routes failed:", err)
		return
	}
	for _, route := range routes {
		fmt.Println("route", route.Prefix().String(), route.Labels().String())
	}
}
