// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package catalogxml

import (
	"bytes"
	"context"
	"time"

	"github.com/stratastor/vcpu/pkg/errors"
	"github.com/stratastor/vcpu/pkg/httpclient"
	"github.com/stratastor/vcpu/pkg/x86"
)

// LoadURL fetches a cpu_map.xml-shaped document from url and loads it
// into a fresh *x86.Map, for deployments that centralize the catalog on
// a config server instead of shipping it to every host.
func LoadURL(ctx context.Context, url string) (*x86.Map, error) {
	clientConfig := httpclient.NewClientConfig()
	clientConfig.Timeout = 15 * time.Second
	client := httpclient.NewClient(clientConfig)

	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, errors.New(errors.CatalogFetchFailed, err.Error())
	}
	if !resp.IsSuccess() {
		return nil, errors.New(errors.CatalogFetchFailed, resp.Status())
	}

	m := x86.NewMap()
	loadErr := Load(bytes.NewReader(resp.Body()), m.AsLoader())
	if len(m.Models) == 0 {
		if loadErr != nil {
			return nil, loadErr
		}
		return nil, errors.New(errors.CatalogEmpty, "no usable models fetched from "+url)
	}
	return m, nil
}
