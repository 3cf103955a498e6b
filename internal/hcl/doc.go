// Package hcl provides the HCL implementation of the config.Loader
// interface. It parses `.hcl` files with hclparse, decodes their blocks with
// gohcl and converts seed field expressions from cty values to Go values.
//
// A configuration file looks like:
//
//	schema_dir      = "./schemas"
//	default_version = "8.6"
//	log_level       = "debug"
//
//	seed "Building" {
//	  fields = {
//	    "Name"       = "HQ"
//	    "North Axis" = 30
//	  }
//	}
//
//	publish {
//	  url       = "http://localhost:3000"
//	  namespace = "/models"
//	  event     = "model"
//	  timeout   = "5s"
//	}
package hcl
