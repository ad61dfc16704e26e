// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package catalogd

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stratastor/logger"
	"github.com/stratastor/vcpu/internal/managers"
)

const testCatalog = `<cpus>
  <vendor name="Intel" string="GenuineIntel"/>
  <feature name="lm"><cpuid eax_in="0x80000001" edx="0x20000000"/></feature>
  <model name="Nehalem"><vendor name="Intel"/><feature name="lm"/></model>
</cpus>`

func TestRefresherInstallsCatalogOnStart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testCatalog))
	}))
	defer srv.Close()

	l, err := logger.NewTag(logger.Config{LogLevel: "error"}, "catalogd-test")
	require.NoError(t, err)

	r, err := NewRefresher(srv.URL, time.Hour, l)
	require.NoError(t, err)

	require.NoError(t, r.Start(t.Context()))
	defer r.Shutdown()

	cat := managers.GetCatalog()
	require.NotNil(t, cat)
	_, ok := cat.FindModel("Nehalem")
	require.True(t, ok)
}

func TestRefresherStartFailsOnBadURL(t *testing.T) {
	l, err := logger.NewTag(logger.Config{LogLevel: "error"}, "catalogd-test")
	require.NoError(t, err)

	r, err := NewRefresher("http://127.0.0.1:0/does-not-exist", time.Hour, l)
	require.NoError(t, err)

	require.Error(t, r.Start(t.Context()))
}
