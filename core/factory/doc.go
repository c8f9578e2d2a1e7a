// Package factory instantiates pluggable modules, such as metrics sinks,
// from configuration. A module is a type name plus a map of raw settings
// that the registered factory decodes with Decode.
//
//	reg := factory.NewRegistry[metrics.MetricsSink]()
//	_ = reg.Register("influx", func(conf map[string]any) (metrics.MetricsSink, error) {
//	    var c InfluxConfig
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return NewInfluxSink(c), nil
//	})
//	sink, err := reg.Create(factory.ModuleConfig{Type: "influx", Conf: raw})
package factory
